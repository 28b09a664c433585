package assistant_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/toolbox/internal/aicontext"
	"github.com/frahmantamala/toolbox/internal/assistant"
	"github.com/frahmantamala/toolbox/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingService struct {
	message  string
	provider assistant.Provider
	panics   bool
}

func (s *recordingService) Chat(_ context.Context, message string, provider assistant.Provider) string {
	if s.panics {
		panic("provider exploded")
	}
	s.message = message
	s.provider = provider
	return "reply from " + string(provider)
}

func (s *recordingService) AnalyzeCode(_ context.Context, code, codeContext string, provider assistant.Provider) string {
	s.message = code + "|" + codeContext
	s.provider = provider
	return "analysis"
}

func (s *recordingService) Available(p assistant.Provider) bool {
	return p == assistant.ProviderClaude
}

type fakeContexts struct {
	query string
}

func (f *fakeContexts) SpecificContext(_ context.Context, contextType string) string {
	return "context:" + contextType
}

func (f *fakeContexts) QueryDatabase(_ context.Context, query string) string {
	f.query = query
	return "Query Results (0 rows):\n"
}

func (f *fakeContexts) AnalyzeFile(relPath string) (string, error) {
	if strings.HasPrefix(relPath, "..") {
		return "", aicontext.ErrOutsideProject
	}
	return "File: " + relPath + "\n\nContent:\npackage main\n", nil
}

var _ = Describe("Handler", func() {
	var (
		service  *recordingService
		contexts *fakeContexts
		handler  *assistant.Handler
	)

	BeforeEach(func() {
		service = &recordingService{}
		contexts = &fakeContexts{}
		base := transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
		handler = assistant.NewHandler(base, service, contexts, assistant.ProviderAzureOpenAI)
	})

	post := func(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))
		return w
	}

	Describe("SendMessage", func() {
		It("dispatches to the requested provider", func() {
			w := post(handler.SendMessage, `{"message":"hello","provider":"claude"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(HavePrefix("text/plain"))
			Expect(w.Body.String()).To(Equal("reply from CLAUDE"))
			Expect(service.message).To(Equal("hello"))
		})

		It("falls back to the default provider", func() {
			w := post(handler.SendMessage, `{"message":"hello"}`)

			Expect(w.Body.String()).To(Equal("reply from AZURE_OPENAI"))
		})

		DescribeTable("answers bad input with the generic message",
			func(body string) {
				w := post(handler.SendMessage, body)

				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(w.Body.String()).To(Equal("Unable to process your request. Please try again later."))
			},
			Entry("unknown provider", `{"message":"hello","provider":"GEMINI"}`),
			Entry("blank message", `{"message":"  "}`),
			Entry("malformed json", `{"message":`),
			Entry("unknown field", `{"message":"hi","model":"x"}`),
		)

		It("hides a panic behind the generic message", func() {
			service.panics = true

			w := post(handler.SendMessage, `{"message":"hello"}`)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(Equal("Unable to process your request. Please try again later."))
			Expect(w.Body.String()).NotTo(ContainSubstring("exploded"))
		})
	})

	Describe("AnalyzeCode", func() {
		It("forwards code and context", func() {
			w := post(handler.AnalyzeCode, `{"code":"x := 1","context":"snippet","provider":"AZURE_OPENAI"}`)

			Expect(w.Body.String()).To(Equal("analysis"))
			Expect(service.message).To(Equal("x := 1|snippet"))
			Expect(service.provider).To(Equal(assistant.ProviderAzureOpenAI))
		})

		It("requires code", func() {
			w := post(handler.AnalyzeCode, `{"context":"snippet"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(Equal("Unable to analyze code. Please try again later."))
		})
	})

	It("passes the raw body to the query gate", func() {
		w := post(handler.QueryDatabase, "SELECT * FROM roles")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(contexts.query).To(Equal("SELECT * FROM roles"))
		Expect(w.Body.String()).To(Equal("Query Results (0 rows):\n"))
	})

	It("returns the requested context block", func() {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("type", "git")
		req := httptest.NewRequest(http.MethodGet, "/chat/context/git", nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()

		handler.GetContext(w, req)

		Expect(w.Body.String()).To(Equal("context:git"))
	})

	Describe("GetFile", func() {
		It("returns file content", func() {
			w := httptest.NewRecorder()
			handler.GetFile(w, httptest.NewRequest(http.MethodGet, "/chat/file?path=main.go", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(HavePrefix("File: main.go"))
		})

		It("refuses paths outside the project", func() {
			w := httptest.NewRecorder()
			handler.GetFile(w, httptest.NewRequest(http.MethodGet, "/chat/file?path=../etc/passwd", nil))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(Equal("Unable to retrieve context information."))
		})
	})

	It("lists providers with their availability", func() {
		w := httptest.NewRecorder()
		handler.ListProviders(w, httptest.NewRequest(http.MethodGet, "/chat/providers", nil))

		var providers []assistant.ProviderDTO
		Expect(json.NewDecoder(w.Body).Decode(&providers)).To(Succeed())
		Expect(providers).To(Equal([]assistant.ProviderDTO{
			{Name: assistant.ProviderAzureOpenAI, DisplayName: "Azure OpenAI", Available: false},
			{Name: assistant.ProviderClaude, DisplayName: "Claude (Anthropic)", Available: true},
		}))
	})
})
