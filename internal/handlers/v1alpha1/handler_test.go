package v1alpha1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	api "github.com/jobkeeper/application-tracker/api/v1alpha1"
	"github.com/jobkeeper/application-tracker/internal/config"
	handlers "github.com/jobkeeper/application-tracker/internal/handlers/v1alpha1"
	"github.com/jobkeeper/application-tracker/internal/store"
	"github.com/jobkeeper/application-tracker/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestHandlers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Handlers Suite")
}

func ptr(s string) *string {
	return &s
}

var _ = Describe("dashboard api", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		tmpDir string
		router *chi.Mux
	)

	BeforeAll(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "tracker-handlers-test")
		Expect(err).To(BeNil())

		cfg := config.NewDefault()
		cfg.Database.Type = "sqlite"
		cfg.Database.Path = filepath.Join(tmpDir, "test.db")

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		gormdb = db

		s = store.NewStore(db)
		Expect(s.InitialMigration()).To(BeNil())

		router = chi.NewRouter()
		handlers.NewHandler(s).RegisterRoutes(router)
	})

	AfterAll(func() {
		s.Close()
		os.RemoveAll(tmpDir)
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM events;")
		gormdb.Exec("DELETE FROM applications;")
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("lists applications with an optional status filter", func() {
		_, err := s.Application().Insert(context.TODO(), model.Application{ID: "app_a", Source: "email", Status: "Applied", Company: ptr("Acme Corp")})
		Expect(err).To(BeNil())
		_, err = s.Application().Insert(context.TODO(), model.Application{ID: "app_b", Source: "email", Status: "Rejected"})
		Expect(err).To(BeNil())

		rec := get("/api/v1/applications")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var list api.ApplicationList
		Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(BeNil())
		Expect(list.Total).To(Equal(2))

		rec = get("/api/v1/applications?status=Rejected")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(BeNil())
		Expect(list.Total).To(Equal(1))
		Expect(list.Items[0].ID).To(Equal("app_b"))
	})

	It("returns a single application", func() {
		_, err := s.Application().Insert(context.TODO(), model.Application{ID: "app_a", Source: "email", Status: "Applied", Company: ptr("Acme Corp")})
		Expect(err).To(BeNil())

		rec := get("/api/v1/applications/app_a")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var application api.Application
		Expect(json.Unmarshal(rec.Body.Bytes(), &application)).To(BeNil())
		Expect(application.ID).To(Equal("app_a"))
		Expect(application.Company).To(HaveValue(Equal("Acme Corp")))
	})

	It("returns 404 for a missing application", func() {
		rec := get("/api/v1/applications/app_missing")
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("lists events for one application", func() {
		_, err := s.Application().Insert(context.TODO(), model.Application{ID: "app_a", Source: "email", Status: "Applied"})
		Expect(err).To(BeNil())
		_, err = s.Event().Insert(context.TODO(), model.Event{ApplicationID: "app_a", EventType: "Applied", EventDate: time.Now(), EvidenceSource: "email"})
		Expect(err).To(BeNil())

		rec := get("/api/v1/events?application_id=app_a")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var list api.EventList
		Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(BeNil())
		Expect(list.Total).To(Equal(1))
		Expect(list.Items[0].EventType).To(Equal("Applied"))
	})

	It("summarizes the ledger", func() {
		_, err := s.Application().Insert(context.TODO(), model.Application{ID: "app_a", Source: "email", Status: "Applied"})
		Expect(err).To(BeNil())
		_, err = s.Application().Insert(context.TODO(), model.Application{ID: "app_b", Source: "email", Status: "Applied"})
		Expect(err).To(BeNil())

		rec := get("/api/v1/stats")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var stats api.Stats
		Expect(json.Unmarshal(rec.Body.Bytes(), &stats)).To(BeNil())
		Expect(stats.Applications).To(Equal(2))
		Expect(stats.ByStatus).To(HaveKeyWithValue("Applied", 2))
	})
})
