package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"horizon/internal/faq"
	"horizon/internal/model"
	"horizon/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newChatRouter() *gin.Engine {
	resolver := service.NewResolverService(faq.NewTable(), nil, 0)
	h := NewChatHandler(resolver, nil)

	r := gin.New()
	r.POST("/api/v1/chat", h.Chat)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatHandler_Chat(t *testing.T) {
	Convey("ChatHandler.Chat 对话接口", t, func() {
		r := newChatRouter()

		Convey("FAQ 命中返回答案", func() {
			w := postJSON(r, "/api/v1/chat", model.ChatRequest{Message: "What is a REST API?"})
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp model.ChatResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Answer, ShouldContainSubstring, "Representational State Transfer")

			Convey("未登录时不持久化", func() {
				So(resp.Saved, ShouldBeFalse)
				So(resp.ConversationID, ShouldBeEmpty)
			})
		})

		Convey("缺少 message 字段返回400", func() {
			w := postJSON(r, "/api/v1/chat", gin.H{})
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var resp model.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 40001)
		})

		Convey("空白 message 返回400", func() {
			w := postJSON(r, "/api/v1/chat", model.ChatRequest{Message: "   "})
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var resp model.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 40001)
		})

		Convey("未命中任何来源时返回兜底答案", func() {
			w := postJSON(r, "/api/v1/chat", model.ChatRequest{Message: "xyzzy plugh"})
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp model.ChatResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Answer, ShouldContainSubstring, "I apologize")
		})
	})
}

func TestReferenceHandler_List(t *testing.T) {
	Convey("ReferenceHandler.List 参考资料接口", t, func() {
		h := NewReferenceHandler(service.NewReferenceService())
		r := gin.New()
		r.GET("/api/v1/references", h.List)

		Convey("正常查询返回链接列表", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/references?q=git+rebase", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)

			var resp model.ReferencesResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Query, ShouldEqual, "git rebase")
			So(len(resp.References), ShouldEqual, 3)
		})

		Convey("缺少 q 参数返回400", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/references", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
