package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/internal/model"
	"horizon/internal/repository"
)

// fakeConversationRepo 对话仓库的内存测试替身
type fakeConversationRepo struct {
	store map[string]*model.Conversation

	insertCalls int
	updateCalls int
	deleteCalls int

	insertErr error
	findErr   error
	updateErr error
	deleteErr error

	// 模拟删除不生效
	deleteNoop bool
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		store: make(map[string]*model.Conversation),
	}
}

func (f *fakeConversationRepo) Insert(_ context.Context, conv *model.Conversation) error {
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	conv.ID = primitive.NewObjectID()
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = time.Now()
	clone := *conv
	f.store[conv.ID.Hex()] = &clone
	return nil
}

func (f *fakeConversationRepo) FindByID(_ context.Context, id string) (*model.Conversation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	conv, ok := f.store[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *conv
	return &clone, nil
}

func (f *fakeConversationRepo) UpdateByID(_ context.Context, id string, update repository.ConversationUpdate) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	conv, ok := f.store[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.Turns != nil {
		conv.Turns = *update.Turns
	}
	if update.Title != nil {
		conv.Title = *update.Title
	}
	if update.Archived != nil {
		conv.Archived = *update.Archived
	}
	conv.UpdatedAt = time.Now()
	return nil
}

func (f *fakeConversationRepo) DeleteByID(_ context.Context, id string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if !f.deleteNoop {
		delete(f.store, id)
	}
	return nil
}

func (f *fakeConversationRepo) ListByOwner(_ context.Context, userID string) ([]*model.Conversation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []*model.Conversation
	for _, conv := range f.store {
		if conv.UserID == userID {
			clone := *conv
			out = append(out, &clone)
		}
	}
	// 与真实仓库一致：创建时间倒序，最多 ListLimit 条
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > repository.ListLimit {
		out = out[:repository.ListLimit]
	}
	return out, nil
}

func userTurn(text string) model.Turn {
	return model.Turn{ID: "t1", Text: text, IsBot: false, Timestamp: time.Now()}
}

func botTurn(text string) model.Turn {
	return model.Turn{ID: "t2", Text: text, IsBot: true, Timestamp: time.Now()}
}

func TestConversationService_Save(t *testing.T) {
	Convey("ConversationService.Save 区分首存和续存", t, func() {
		ctx := context.Background()
		repo := newFakeConversationRepo()
		svc := NewConversationService(repo, nil)

		Convey("首次保存执行插入并回填ID", func() {
			conv := &model.Conversation{UserID: "u1"}
			turns := []model.Turn{userTurn("What is Docker?"), botTurn("Docker is...")}

			err := svc.Save(ctx, conv, turns, SaveOptions{})
			So(err, ShouldBeNil)
			So(conv.Saved(), ShouldBeTrue)
			So(repo.insertCalls, ShouldEqual, 1)
			So(repo.updateCalls, ShouldEqual, 0)

			Convey("标题取第一条用户消息", func() {
				So(conv.Title, ShouldEqual, "What is Docker?")
			})

			Convey("再次保存同一对话执行更新而非插入", func() {
				turns = append(turns, userTurn("more"), botTurn("sure"))
				err := svc.Save(ctx, conv, turns, SaveOptions{})
				So(err, ShouldBeNil)
				So(repo.insertCalls, ShouldEqual, 1)
				So(repo.updateCalls, ShouldEqual, 1)

				stored, _ := repo.FindByID(ctx, conv.ID.Hex())
				So(len(stored.Turns), ShouldEqual, 4)
			})
		})

		Convey("超长标题截断为30字符加省略号", func() {
			longText := strings.Repeat("a", 40)
			conv := &model.Conversation{UserID: "u1"}

			err := svc.Save(ctx, conv, []model.Turn{userTurn(longText)}, SaveOptions{})
			So(err, ShouldBeNil)
			So(conv.Title, ShouldEqual, strings.Repeat("a", 30)+"...")
		})

		Convey("多字节文本按字符截断，不产生无效UTF-8", func() {
			longText := strings.Repeat("数", 40)
			conv := &model.Conversation{UserID: "u1"}

			err := svc.Save(ctx, conv, []model.Turn{userTurn(longText)}, SaveOptions{})
			So(err, ShouldBeNil)
			So(conv.Title, ShouldEqual, strings.Repeat("数", 30)+"...")
			So(utf8.ValidString(conv.Title), ShouldBeTrue)
		})

		Convey("全部是机器人消息时使用默认标题", func() {
			conv := &model.Conversation{UserID: "u1"}

			err := svc.Save(ctx, conv, []model.Turn{botTurn("greetings")}, SaveOptions{})
			So(err, ShouldBeNil)
			So(conv.Title, ShouldEqual, "New conversation")
		})

		Convey("续存时未携带的可选字段不被覆盖", func() {
			conv := &model.Conversation{UserID: "u1"}
			So(svc.Save(ctx, conv, []model.Turn{userTurn("hi")}, SaveOptions{}), ShouldBeNil)

			title := "Custom"
			archived := true
			So(svc.Save(ctx, conv, conv.Turns, SaveOptions{Title: &title, Archived: &archived}), ShouldBeNil)

			// 第三次保存不携带可选字段
			So(svc.Save(ctx, conv, conv.Turns, SaveOptions{}), ShouldBeNil)

			stored, _ := repo.FindByID(ctx, conv.ID.Hex())
			So(stored.Title, ShouldEqual, "Custom")
			So(stored.Archived, ShouldBeTrue)
		})

		Convey("插入失败时对话保持未持久化状态", func() {
			repo.insertErr = errors.New("db down")
			conv := &model.Conversation{UserID: "u1"}

			err := svc.Save(ctx, conv, []model.Turn{userTurn("hi")}, SaveOptions{})
			So(err, ShouldNotBeNil)
			So(conv.Saved(), ShouldBeFalse)
		})

		Convey("缺少用户ID时拒绝保存", func() {
			conv := &model.Conversation{}
			err := svc.Save(ctx, conv, []model.Turn{userTurn("hi")}, SaveOptions{})
			So(err, ShouldEqual, ErrMissingUserID)
		})
	})
}

func TestConversationService_Rename(t *testing.T) {
	Convey("ConversationService.Rename 重命名对话", t, func() {
		ctx := context.Background()
		repo := newFakeConversationRepo()
		svc := NewConversationService(repo, nil)

		conv := &model.Conversation{UserID: "u1"}
		So(svc.Save(ctx, conv, []model.Turn{userTurn("hi")}, SaveOptions{}), ShouldBeNil)
		id := conv.ID.Hex()

		Convey("正常重命名", func() {
			err := svc.Rename(ctx, "u1", id, "New Title")
			So(err, ShouldBeNil)

			stored, _ := repo.FindByID(ctx, id)
			So(stored.Title, ShouldEqual, "New Title")
		})

		Convey("空白标题是no-op，不触发任何更新", func() {
			before := repo.updateCalls
			err := svc.Rename(ctx, "u1", id, "   ")
			So(err, ShouldBeNil)
			So(repo.updateCalls, ShouldEqual, before)

			stored, _ := repo.FindByID(ctx, id)
			So(stored.Title, ShouldEqual, "hi")
		})

		Convey("他人的对话不可见", func() {
			err := svc.Rename(ctx, "u2", id, "Hijacked")
			So(err, ShouldEqual, ErrConversationNotFound)
		})

		Convey("不存在的对话返回错误", func() {
			err := svc.Rename(ctx, "u1", primitive.NewObjectID().Hex(), "Title")
			So(err, ShouldEqual, ErrConversationNotFound)
		})
	})
}

func TestConversationService_Archive(t *testing.T) {
	Convey("ConversationService.Archive 归档往返", t, func() {
		ctx := context.Background()
		repo := newFakeConversationRepo()
		svc := NewConversationService(repo, nil)

		conv := &model.Conversation{UserID: "u1"}
		So(svc.Save(ctx, conv, []model.Turn{userTurn("hi")}, SaveOptions{}), ShouldBeNil)
		id := conv.ID.Hex()

		Convey("归档后取消归档恢复原状", func() {
			So(svc.Archive(ctx, "u1", id, true), ShouldBeNil)
			stored, _ := repo.FindByID(ctx, id)
			So(stored.Archived, ShouldBeTrue)

			So(svc.Archive(ctx, "u1", id, false), ShouldBeNil)
			stored, _ = repo.FindByID(ctx, id)
			So(stored.Archived, ShouldBeFalse)
		})
	})
}

func TestConversationService_Delete(t *testing.T) {
	Convey("ConversationService.Delete 三段式删除", t, func() {
		ctx := context.Background()
		repo := newFakeConversationRepo()
		svc := NewConversationService(repo, nil)

		conv := &model.Conversation{UserID: "u1"}
		So(svc.Save(ctx, conv, []model.Turn{userTurn("hi")}, SaveOptions{}), ShouldBeNil)
		id := conv.ID.Hex()

		Convey("正常删除并复查确认", func() {
			err := svc.Delete(ctx, "u1", id)
			So(err, ShouldBeNil)
			So(repo.deleteCalls, ShouldEqual, 1)

			_, findErr := repo.FindByID(ctx, id)
			So(findErr, ShouldEqual, repository.ErrNotFound)
		})

		Convey("对话本就不存在时幂等成功，不执行删除", func() {
			err := svc.Delete(ctx, "u1", primitive.NewObjectID().Hex())
			So(err, ShouldBeNil)
			So(repo.deleteCalls, ShouldEqual, 0)
		})

		Convey("存在性检查失败时中止", func() {
			repo.findErr = errors.New("db down")
			err := svc.Delete(ctx, "u1", id)
			So(err, ShouldNotBeNil)
			So(repo.deleteCalls, ShouldEqual, 0)
		})

		Convey("删除后记录仍在返回 ErrDeleteNotVerified", func() {
			repo.deleteNoop = true
			err := svc.Delete(ctx, "u1", id)
			So(err, ShouldEqual, ErrDeleteNotVerified)
		})

		Convey("他人的对话不可删除，响应与不存在一致", func() {
			err := svc.Delete(ctx, "u2", id)
			So(err, ShouldBeNil)
			So(repo.deleteCalls, ShouldEqual, 0)

			// 记录本身未被动过
			stored, findErr := repo.FindByID(ctx, id)
			So(findErr, ShouldBeNil)
			So(stored.UserID, ShouldEqual, "u1")
		})
	})
}

func TestConversationService_ListByOwner(t *testing.T) {
	Convey("ConversationService.ListByOwner 返回对话摘要", t, func() {
		ctx := context.Background()
		repo := newFakeConversationRepo()
		svc := NewConversationService(repo, nil)

		Convey("标题为空时回退默认值，turns 非 nil", func() {
			oid := primitive.NewObjectID()
			repo.store[oid.Hex()] = &model.Conversation{
				ID:        oid,
				UserID:    "u1",
				CreatedAt: time.Now(),
			}

			summaries, err := svc.ListByOwner(ctx, "u1")
			So(err, ShouldBeNil)
			So(len(summaries), ShouldEqual, 1)
			So(summaries[0].Title, ShouldEqual, "Untitled Chat")
			So(summaries[0].Turns, ShouldNotBeNil)
			So(summaries[0].Archived, ShouldBeFalse)
		})

		Convey("按创建时间倒序排列", func() {
			base := time.Now()
			for i := 0; i < 3; i++ {
				oid := primitive.NewObjectID()
				repo.store[oid.Hex()] = &model.Conversation{
					ID:        oid,
					UserID:    "u1",
					Title:     fmt.Sprintf("conv-%d", i),
					CreatedAt: base.Add(time.Duration(i) * time.Minute),
				}
			}

			summaries, err := svc.ListByOwner(ctx, "u1")
			So(err, ShouldBeNil)
			So(len(summaries), ShouldEqual, 3)
			So(summaries[0].Title, ShouldEqual, "conv-2")
			So(summaries[1].Title, ShouldEqual, "conv-1")
			So(summaries[2].Title, ShouldEqual, "conv-0")
		})

		Convey("超出上限时只返回最新的30条", func() {
			base := time.Now()
			for i := 0; i < repository.ListLimit+5; i++ {
				oid := primitive.NewObjectID()
				repo.store[oid.Hex()] = &model.Conversation{
					ID:        oid,
					UserID:    "u1",
					Title:     fmt.Sprintf("conv-%d", i),
					CreatedAt: base.Add(time.Duration(i) * time.Minute),
				}
			}

			summaries, err := svc.ListByOwner(ctx, "u1")
			So(err, ShouldBeNil)
			So(len(summaries), ShouldEqual, repository.ListLimit)

			// 最新的在前，最旧的5条被裁掉
			So(summaries[0].Title, ShouldEqual, fmt.Sprintf("conv-%d", repository.ListLimit+4))
			So(summaries[len(summaries)-1].Title, ShouldEqual, "conv-5")
		})

		Convey("只返回本人的对话", func() {
			for _, uid := range []string{"u1", "u1", "u2"} {
				conv := &model.Conversation{UserID: uid}
				So(svc.Save(ctx, conv, []model.Turn{userTurn("hi")}, SaveOptions{}), ShouldBeNil)
			}

			summaries, err := svc.ListByOwner(ctx, "u1")
			So(err, ShouldBeNil)
			So(len(summaries), ShouldEqual, 2)
		})

		Convey("缺少用户ID时拒绝查询", func() {
			_, err := svc.ListByOwner(ctx, "")
			So(err, ShouldEqual, ErrMissingUserID)
		})
	})
}
