package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todolist/pkg/test"

	api "todolist/internal/adapter/http"
	"todolist/internal/adapter/http/routes"
	"todolist/internal/core/codec"
	"todolist/internal/core/store"
	"todolist/internal/core/telemetry"
	"todolist/pkg/config"
)

type TransferHandlerSuite struct {
	suite.Suite
	Router *gin.Engine
	Store  *store.Store
}

func (s *TransferHandlerSuite) SetupTest() {
	s.Store, _ = NewTestStore()

	logger, err := config.NewAppLogger("todolist-test")

	Expect(err).To(BeNil())

	container := api.NewContainer(s.Store, telemetry.NewNoOpProbe(), logger, nil)

	s.Router = routes.SetupRouterForTests(routes.HandlersConfig{
		TodoHandler:     container.TodoHandler,
		ViewHandler:     container.ViewHandler,
		TransferHandler: container.TransferHandler,
	})
}

func TestTransferHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TransferHandlerSuite))
}

func (s *TransferHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	return w
}

func (s *TransferHandlerSuite) TestExport_EnvelopeAndFilename() {
	s.do("POST", "/todos", `{"text":"Buy milk"}`)

	w := s.do("GET", "/export", "")

	Expect(w.Code).To(Equal(http.StatusOK))

	expected := codec.ExportFilename(time.Now())

	Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring(expected))
	Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

	var doc codec.Document

	Expect(json.Unmarshal(w.Body.Bytes(), &doc)).To(BeNil())
	Expect(doc.Version).To(Equal(codec.Version))
	Expect(doc.Todos).To(HaveLen(1))
	Expect(doc.Todos[0].Text).To(Equal("Buy milk"))
}

func (s *TransferHandlerSuite) TestExport_EmptyCollection() {
	w := s.do("GET", "/export", "")

	Expect(w.Code).To(Equal(http.StatusOK))

	var doc codec.Document

	Expect(json.Unmarshal(w.Body.Bytes(), &doc)).To(BeNil())
	Expect(doc.Todos).To(BeEmpty())
	Expect(doc.Todos).NotTo(BeNil())
}

func (s *TransferHandlerSuite) TestImport_WithoutConfirmIsPreviewOnly() {
	s.do("POST", "/todos", `{"text":"existing"}`)

	w := s.do("POST", "/import", `{"todos":[{"id":"i1","text":"incoming"}]}`)

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(ContainSubstring(`"confirmed":false`))
	Expect(w.Body.String()).To(ContainSubstring("confirm=true"))

	// Collection untouched until confirmed.
	Expect(s.Store.Todos()).To(HaveLen(1))
	Expect(s.Store.Todos()[0].Text).To(Equal("existing"))
}

func (s *TransferHandlerSuite) TestImport_ConfirmedReplacesCollection() {
	s.do("POST", "/todos", `{"text":"existing"}`)

	w := s.do("POST", "/import?confirm=true", `{"todos":[{"id":"i1","text":"one"},{"id":"i2","text":"two"}]}`)

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(ContainSubstring(`"confirmed":true`))

	todos := s.Store.Todos()

	Expect(todos).To(HaveLen(2))
	Expect(todos[0].ID).To(Equal("i1"))
	Expect(todos[1].ID).To(Equal("i2"))
}

func (s *TransferHandlerSuite) TestImport_RoundTripThroughExport() {
	s.do("POST", "/todos", `{"text":"alpha","category":"Work","priority":"high"}`)
	s.do("POST", "/todos", `{"text":"beta"}`)

	exported := s.do("GET", "/export", "")

	Expect(exported.Code).To(Equal(http.StatusOK))

	before := s.Store.Todos()

	w := s.do("POST", "/import?confirm=true", exported.Body.String())

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(s.Store.Todos()).To(HaveLen(len(before)))
	Expect(s.Store.Todos()[0].ID).To(Equal(before[0].ID))
}

func (s *TransferHandlerSuite) TestImport_MalformedDocumentRejected() {
	s.do("POST", "/todos", `{"text":"existing"}`)

	cases := []string{
		"{not json",
		`{"version":"1.0"}`,
		`{"todos":[{"text":"no id"}]}`,
		`{"todos":[{"id":"1","text":"a"},{"id":"1","text":"b"}]}`,
	}

	for _, body := range cases {
		w := s.do("POST", "/import?confirm=true", body)

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(w.Body.String()).To(ContainSubstring("IMPORT_FORMAT_ERROR"))
	}

	Expect(s.Store.Todos()).To(HaveLen(1))
}
