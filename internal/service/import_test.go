package service_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jobkeeper/application-tracker/internal/config"
	"github.com/jobkeeper/application-tracker/internal/dedup"
	"github.com/jobkeeper/application-tracker/internal/service"
	"github.com/jobkeeper/application-tracker/internal/store"
	"github.com/jobkeeper/application-tracker/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("import", Ordered, func() {
	var (
		s        store.Store
		gormdb   *gorm.DB
		tmpDir   string
		importer *service.ImportService
	)

	writeFile := func(name, content string) string {
		path := filepath.Join(tmpDir, name)
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(BeNil())
		return path
	}

	BeforeAll(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "tracker-import-test")
		Expect(err).To(BeNil())

		cfg := config.NewDefault()
		cfg.Database.Type = "sqlite"
		cfg.Database.Path = filepath.Join(tmpDir, "test.db")

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		gormdb = db

		s = store.NewStore(db)
		Expect(s.InitialMigration()).To(BeNil())

		importer = service.NewImportService(s, dedup.NewMatcher(s, 14), time.UTC)
	})

	AfterAll(func() {
		s.Close()
		os.RemoveAll(tmpDir)
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM events;")
		gormdb.Exec("DELETE FROM applications;")
	})

	It("imports applications from CSV", func() {
		path := writeFile("apps.csv",
			"company,role_title,location,job_url,source,status,applied_date,notes\n"+
				"Initech GmbH,Software Engineer,Berlin,https://jobs.example/1,portal,Applied,2026-02-01,first round\n"+
				"Hooli Inc,Data Engineer,,,,Applied,2026-02-03,\n")

		result, err := importer.ImportFile(context.TODO(), path)
		Expect(err).To(BeNil())
		Expect(result.Loaded).To(Equal(2))
		Expect(result.Imported).To(Equal(2))

		applications, err := s.Application().List(context.TODO(), nil, nil)
		Expect(err).To(BeNil())
		Expect(applications).To(HaveLen(2))

		matched, err := s.Application().List(context.TODO(),
			store.NewApplicationQueryFilter().ByJobURL("https://jobs.example/1"), nil)
		Expect(err).To(BeNil())
		Expect(matched).To(HaveLen(1))
		Expect(matched[0].Company).To(HaveValue(Equal("Initech GmbH")))
		Expect(matched[0].StatusConfidence).To(HaveValue(Equal("High")))
		Expect(matched[0].Source).To(Equal("portal"))

		events, err := s.Event().List(context.TODO(),
			store.NewEventQueryOptions().ByApplicationID(matched[0].ID))
		Expect(err).To(BeNil())
		Expect(events).To(HaveLen(1))
		Expect(events[0].EventType).To(Equal("Applied"))
		Expect(events[0].EvidenceSource).To(Equal("manual_import"))
		Expect(events[0].EvidenceText).To(HaveValue(Equal("Imported from apps.csv")))
	})

	It("imports applications from JSON", func() {
		path := writeFile("apps.json",
			`[{"company":"Initech GmbH","role_title":"Software Engineer","applied_date":"2026-02-01"}]`)

		result, err := importer.ImportFile(context.TODO(), path)
		Expect(err).To(BeNil())
		Expect(result.Imported).To(Equal(1))

		applications, err := s.Application().List(context.TODO(), nil, nil)
		Expect(err).To(BeNil())
		Expect(applications).To(HaveLen(1))
		Expect(applications[0].Source).To(Equal("manual"))
		Expect(applications[0].Status).To(Equal("Applied"))
	})

	It("skips placeholder rows", func() {
		path := writeFile("template.csv",
			"company,role_title\n"+
				"Example Corp,Software Engineer\n"+
				"TechCorp GmbH,Data Engineer\n")

		result, err := importer.ImportFile(context.TODO(), path)
		Expect(err).To(BeNil())
		Expect(result.Imported).To(Equal(0))
		Expect(result.Skipped).To(Equal(2))

		applications, err := s.Application().List(context.TODO(), nil, nil)
		Expect(err).To(BeNil())
		Expect(applications).To(BeEmpty())
	})

	It("merges into an existing application instead of duplicating", func() {
		applied := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		_, err := s.Application().Insert(context.TODO(), model.Application{
			ID:          "app_existing",
			Source:      "email",
			Status:      "Applied",
			Company:     ptr("Initech GmbH"),
			RoleTitle:   ptr("Software Engineer"),
			AppliedDate: &applied,
		})
		Expect(err).To(BeNil())

		path := writeFile("merge.csv",
			"company,role_title,location,applied_date,notes\n"+
				"Initech GmbH,Software Engineer,Berlin,2026-02-03,from portal\n")

		result, err := importer.ImportFile(context.TODO(), path)
		Expect(err).To(BeNil())
		Expect(result.Imported).To(Equal(0))
		Expect(result.Merged).To(Equal(1))

		applications, err := s.Application().List(context.TODO(), nil, nil)
		Expect(err).To(BeNil())
		Expect(applications).To(HaveLen(1))
		Expect(applications[0].Location).To(HaveValue(Equal("Berlin")))
		Expect(applications[0].Notes).To(HaveValue(Equal("from portal")))
	})

	It("skips entries that fail validation", func() {
		path := writeFile("invalid.csv",
			"company,role_title,job_url,status,applied_date\n"+
				"Initech GmbH,Software Engineer,not a url,,\n"+
				"Hooli Inc,Data Engineer,,Hired,\n"+
				"Pied Piper,Backend Engineer,,Applied,sometime soon\n"+
				"Aviato,Platform Engineer,https://jobs.example/42,Applied,2026-02-01\n")

		result, err := importer.ImportFile(context.TODO(), path)
		Expect(err).To(BeNil())
		Expect(result.Loaded).To(Equal(4))
		Expect(result.Imported).To(Equal(1))
		Expect(result.Skipped).To(Equal(3))

		applications, err := s.Application().List(context.TODO(), nil, nil)
		Expect(err).To(BeNil())
		Expect(applications).To(HaveLen(1))
		Expect(applications[0].Company).To(HaveValue(Equal("Aviato")))
	})

	It("rejects unsupported file formats", func() {
		path := writeFile("apps.xml", "<apps/>")

		_, err := importer.ImportFile(context.TODO(), path)
		Expect(err).ToNot(BeNil())
	})
})
