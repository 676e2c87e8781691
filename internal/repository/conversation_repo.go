package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"horizon/internal/model"
)

// ErrNotFound 记录不存在
// 非法的 ObjectID 也视为不存在（这样的记录不可能被写入）
var ErrNotFound = errors.New("conversation not found")

// ListLimit 列表查询的最大条数
const ListLimit = 30

// ConversationUpdate 部分更新字段
// nil 字段不写入，已有值不会被覆盖
type ConversationUpdate struct {
	Turns    *[]model.Turn
	Title    *string
	Archived *bool
}

// ConversationRepo 对话仓库
type ConversationRepo struct {
	collection *mongo.Collection
}

// NewConversationRepo 创建对话仓库
func NewConversationRepo(db *mongo.Database) *ConversationRepo {
	return &ConversationRepo{
		collection: db.Collection("conversations"),
	}
}

// Insert 插入新对话并回填 ID
func (r *ConversationRepo) Insert(ctx context.Context, conv *model.Conversation) error {
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, conv)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		conv.ID = oid
	}
	return nil
}

// FindByID 根据 ID 查询
func (r *ConversationRepo) FindByID(ctx context.Context, id string) (*model.Conversation, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var conv model.Conversation
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &conv, nil
}

// UpdateByID 部分更新对话
// 只写入 update 中携带的字段，updated_at 总是刷新
func (r *ConversationRepo) UpdateByID(ctx context.Context, id string, update ConversationUpdate) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Turns != nil {
		set["turns"] = *update.Turns
	}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Archived != nil {
		set["archived"] = *update.Archived
	}

	_, err = r.collection.UpdateByID(ctx, objectID, bson.M{"$set": set})
	return err
}

// DeleteByID 删除对话
func (r *ConversationRepo) DeleteByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

// ListByOwner 查询用户对话列表
// 按创建时间倒序，最多 ListLimit 条
func (r *ConversationRepo) ListByOwner(ctx context.Context, userID string) ([]*model.Conversation, error) {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(ListLimit)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []*model.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, err
	}

	return convs, nil
}
