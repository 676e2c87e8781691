package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"horizon/internal/faq"
)

// fakeCompleter 远程补全的测试替身
type fakeCompleter struct {
	answer    string
	err       error
	called    bool
	lastInput string
	lastMax   int
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, maxTokens int) (string, error) {
	f.called = true
	f.lastInput = prompt
	f.lastMax = maxTokens
	return f.answer, f.err
}

func TestResolverService_Resolve(t *testing.T) {
	Convey("ResolverService.Resolve 按解析链返回答案", t, func() {
		ctx := context.Background()
		table := faq.NewTableWith([]faq.Entry{
			{Question: "What is Docker?", Answer: "Docker is a container platform."},
		})

		Convey("空问题返回 ErrEmptyQuestion，不触发远程调用", func() {
			completer := &fakeCompleter{}
			svc := NewResolverService(table, completer, 0)

			_, err := svc.Resolve(ctx, "   ")
			So(err, ShouldEqual, ErrEmptyQuestion)
			So(completer.called, ShouldBeFalse)
		})

		Convey("FAQ 命中时直接返回，不触发远程调用", func() {
			completer := &fakeCompleter{}
			svc := NewResolverService(table, completer, 0)

			answer, err := svc.Resolve(ctx, "what is docker?")
			So(err, ShouldBeNil)
			So(answer, ShouldEqual, "Docker is a container platform.")
			So(completer.called, ShouldBeFalse)
		})

		Convey("FAQ 未命中时调用远程补全，发送原始问题文本", func() {
			completer := &fakeCompleter{answer: "A remote answer."}
			svc := NewResolverService(table, completer, 0)

			question := "  Tell Me About Kubernetes  "
			answer, err := svc.Resolve(ctx, question)
			So(err, ShouldBeNil)
			So(answer, ShouldEqual, "A remote answer.")
			So(completer.lastInput, ShouldEqual, question)
		})

		Convey("远程调用携带 maxTokens 上限", func() {
			completer := &fakeCompleter{answer: "ok"}

			Convey("显式配置时使用配置值", func() {
				svc := NewResolverService(table, completer, 128)
				_, _ = svc.Resolve(ctx, "anything else")
				So(completer.lastMax, ShouldEqual, 128)
			})

			Convey("未配置时使用默认值", func() {
				svc := NewResolverService(table, completer, 0)
				_, _ = svc.Resolve(ctx, "anything else")
				So(completer.lastMax, ShouldEqual, DefaultMaxCompletionTokens)
			})
		})

		Convey("远程失败时退回兜底应答表", func() {
			completer := &fakeCompleter{err: errors.New("upstream down")}
			svc := NewResolverService(table, completer, 0)

			answer, err := svc.Resolve(ctx, "hello")
			So(err, ShouldBeNil)
			So(answer, ShouldEqual, "Hello! How can I help you today?")
		})

		Convey("远程失败且兜底表未命中时返回最终兜底", func() {
			completer := &fakeCompleter{err: errors.New("upstream down")}
			svc := NewResolverService(table, completer, 0)

			answer, err := svc.Resolve(ctx, "obscure question")
			So(err, ShouldBeNil)
			So(answer, ShouldContainSubstring, "I apologize")
			So(answer, ShouldContainSubstring, `"obscure question"`)
		})

		Convey("远程返回空答案按失败处理", func() {
			completer := &fakeCompleter{answer: ""}
			svc := NewResolverService(table, completer, 0)

			answer, err := svc.Resolve(ctx, "obscure question")
			So(err, ShouldBeNil)
			So(answer, ShouldContainSubstring, "I apologize")
		})

		Convey("未配置远程补全时直接走兜底链", func() {
			svc := NewResolverService(table, nil, 0)

			answer, err := svc.Resolve(ctx, "hello")
			So(err, ShouldBeNil)
			So(answer, ShouldEqual, "Hello! How can I help you today?")
		})
	})
}
