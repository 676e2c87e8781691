package model

// ChatRequest 对话请求
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// RenameConversationRequest 重命名对话请求
type RenameConversationRequest struct {
	Title string `json:"title" binding:"required"`
}

// ArchiveConversationRequest 归档/取消归档请求
type ArchiveConversationRequest struct {
	Archived *bool `json:"archived" binding:"required"`
}
