package service_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jobkeeper/application-tracker/internal/config"
	"github.com/jobkeeper/application-tracker/internal/service"
	"github.com/jobkeeper/application-tracker/internal/store"
	"github.com/jobkeeper/application-tracker/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var _ = Describe("export", Ordered, func() {
	var (
		s        store.Store
		gormdb   *gorm.DB
		tmpDir   string
		exporter *service.ExportService
	)

	BeforeAll(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "tracker-export-test")
		Expect(err).To(BeNil())

		cfg := config.NewDefault()
		cfg.Database.Type = "sqlite"
		cfg.Database.Path = filepath.Join(tmpDir, "test.db")

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		gormdb = db

		s = store.NewStore(db)
		Expect(s.InitialMigration()).To(BeNil())

		exporter = service.NewExportService(s)
	})

	AfterAll(func() {
		s.Close()
		os.RemoveAll(tmpDir)
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM events;")
		gormdb.Exec("DELETE FROM applications;")
	})

	It("fails when the ledger is empty", func() {
		_, err := exporter.ExportXLSX(context.TODO(), filepath.Join(tmpDir, "empty.xlsx"))
		Expect(err).ToNot(BeNil())
	})

	It("writes both sheets with the expected headers", func() {
		applied := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		_, err := s.Application().Insert(context.TODO(), model.Application{
			ID:          "app_export",
			Source:      "email",
			Status:      "Applied",
			Company:     ptr("Initech GmbH"),
			RoleTitle:   ptr("Software Engineer"),
			AppliedDate: &applied,
		})
		Expect(err).To(BeNil())
		_, err = s.Event().Insert(context.TODO(), model.Event{
			ApplicationID:  "app_export",
			EventType:      "Applied",
			EventDate:      applied,
			EvidenceSource: "email",
			EvidenceText:   ptr("Subject: hello"),
		})
		Expect(err).To(BeNil())

		path := filepath.Join(tmpDir, "out", "applications.xlsx")
		result, err := exporter.ExportXLSX(context.TODO(), path)
		Expect(err).To(BeNil())
		Expect(result.Applications).To(Equal(1))
		Expect(result.Events).To(Equal(1))

		f, err := excelize.OpenFile(path)
		Expect(err).To(BeNil())
		defer f.Close()

		Expect(f.GetSheetList()).To(ConsistOf("Applications", "Events"))

		rows, err := f.GetRows("Applications")
		Expect(err).To(BeNil())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0]).To(Equal([]string{
			"ApplicationID", "CreatedAt", "LastUpdatedAt", "Source", "Company",
			"RoleTitle", "Location", "JobURL", "Status", "StatusConfidence",
			"AppliedDate", "EmailEvidence", "Notes", "NextFollowUpDate",
		}))
		Expect(rows[1][0]).To(Equal("app_export"))
		Expect(rows[1][8]).To(Equal("Applied"))

		rows, err = f.GetRows("Events")
		Expect(err).To(BeNil())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0]).To(Equal([]string{
			"EventID", "ApplicationID", "EventType", "EventDate", "EvidenceSource", "EvidenceText",
		}))
		Expect(rows[1][1]).To(Equal("app_export"))
	})

	It("orders applications by creation time and events by event date, newest first", func() {
		oldCreated := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		newCreated := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
		_, err := s.Application().Insert(context.TODO(), model.Application{
			ID:        "app_old",
			CreatedAt: oldCreated,
			Source:    "email",
			Status:    "Applied",
		})
		Expect(err).To(BeNil())
		_, err = s.Application().Insert(context.TODO(), model.Application{
			ID:        "app_new",
			CreatedAt: newCreated,
			Source:    "email",
			Status:    "Applied",
		})
		Expect(err).To(BeNil())

		_, err = s.Event().Insert(context.TODO(), model.Event{
			ApplicationID:  "app_old",
			EventType:      "Applied",
			EventDate:      oldCreated,
			EvidenceSource: "email",
		})
		Expect(err).To(BeNil())
		_, err = s.Event().Insert(context.TODO(), model.Event{
			ApplicationID:  "app_new",
			EventType:      "Applied",
			EventDate:      newCreated,
			EvidenceSource: "email",
		})
		Expect(err).To(BeNil())

		path := filepath.Join(tmpDir, "ordered.xlsx")
		_, err = exporter.ExportXLSX(context.TODO(), path)
		Expect(err).To(BeNil())

		f, err := excelize.OpenFile(path)
		Expect(err).To(BeNil())
		defer f.Close()

		rows, err := f.GetRows("Applications")
		Expect(err).To(BeNil())
		Expect(rows).To(HaveLen(3))
		Expect(rows[1][0]).To(Equal("app_new"))
		Expect(rows[2][0]).To(Equal("app_old"))

		rows, err = f.GetRows("Events")
		Expect(err).To(BeNil())
		Expect(rows).To(HaveLen(3))
		Expect(rows[1][1]).To(Equal("app_new"))
		Expect(rows[2][1]).To(Equal("app_old"))
	})
})
