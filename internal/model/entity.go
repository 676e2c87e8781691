package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation 对话实体
// ID 为零值表示尚未持久化，首次保存成功后由仓库层回填
type Conversation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title" json:"title"`
	Turns     []Turn             `bson:"turns" json:"turns"`
	Archived  bool               `bson:"archived,omitempty" json:"archived"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Saved 是否已持久化
func (c *Conversation) Saved() bool {
	return !c.ID.IsZero()
}

// Turn 一条消息（用户或AI）
// 创建后不可变
type Turn struct {
	ID        string    `bson:"id" json:"id"`
	Text      string    `bson:"text" json:"text"`
	IsBot     bool      `bson:"is_bot" json:"is_bot"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// ConversationSummary 对话列表条目
// 供侧边栏展示，archived 缺省为 false（兼容旧记录）
type ConversationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Turns     []Turn    `json:"turns"`
	Archived  bool      `json:"archived"`
}

// Reference 网页参考链接
type Reference struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Source      string `json:"source"`
}
