package model

// ChatResponse 对话响应
// Saved 表示本轮对话是否成功持久化；持久化失败不影响 Answer
type ChatResponse struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversation_id,omitempty"`
	Saved          bool   `json:"saved"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ReferencesResponse 网页参考响应
type ReferencesResponse struct {
	Query      string      `json:"query"`
	References []Reference `json:"references"`
}
