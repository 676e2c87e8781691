package faq

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTable_Lookup(t *testing.T) {
	Convey("Table.Lookup 能正确匹配问答数据集", t, func() {
		table := NewTable()

		Convey("精确匹配（忽略大小写和首尾空白）", func() {
			answer, ok := table.Lookup("What is a REST API?")
			So(ok, ShouldBeTrue)
			So(answer, ShouldContainSubstring, "REST")

			answer2, ok2 := table.Lookup("  what is a rest api?  ")
			So(ok2, ShouldBeTrue)
			So(answer2, ShouldEqual, answer)
		})

		Convey("输入包含数据集问题时命中", func() {
			answer, ok := table.Lookup("Please explain docker to me")
			So(ok, ShouldBeTrue)
			So(answer, ShouldContainSubstring, "Docker")
		})

		Convey("数据集问题包含输入时命中", func() {
			answer, ok := table.Lookup("docker")
			So(ok, ShouldBeTrue)
			So(answer, ShouldContainSubstring, "Docker")
		})

		Convey("无匹配返回 false", func() {
			_, ok := table.Lookup("quantum entanglement recipes")
			So(ok, ShouldBeFalse)
		})

		Convey("空输入返回 false", func() {
			_, ok := table.Lookup("   ")
			So(ok, ShouldBeFalse)
		})

		Convey("多条命中时取声明顺序的第一条", func() {
			table := NewTableWith([]Entry{
				{Question: "alpha topic", Answer: "first"},
				{Question: "alpha", Answer: "second"},
			})

			answer, ok := table.Lookup("alpha")
			So(ok, ShouldBeTrue)
			// "alpha" 精确命中第二条之前，包含匹配不应先于精确匹配
			So(answer, ShouldEqual, "second")

			answer, ok = table.Lookup("alpha top")
			So(ok, ShouldBeTrue)
			So(answer, ShouldEqual, "first")
		})

		Convey("内置数据集包含全部条目", func() {
			So(table.Len(), ShouldEqual, 25)
		})
	})
}

func TestFallbackAnswer(t *testing.T) {
	Convey("FallbackAnswer 覆盖问候类输入", t, func() {
		Convey("问候语命中", func() {
			answer, ok := FallbackAnswer("Hello there")
			So(ok, ShouldBeTrue)
			So(answer, ShouldContainSubstring, "Hello")
		})

		Convey("按声明顺序取第一个命中", func() {
			// "hello" 同时包含 "hello" 和 "hell"，应命中 hello 条目
			answer, ok := FallbackAnswer("hello, how are you")
			So(ok, ShouldBeTrue)
			So(answer, ShouldEqual, "Hello! How can I help you today?")
		})

		Convey("知识类问题不命中", func() {
			_, ok := FallbackAnswer("what is kubernetes")
			So(ok, ShouldBeFalse)
		})

		Convey("空输入不命中", func() {
			_, ok := FallbackAnswer("")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestApologyAnswer(t *testing.T) {
	Convey("ApologyAnswer 回显原始问题", t, func() {
		answer := ApologyAnswer("my odd question")
		So(answer, ShouldContainSubstring, `"my odd question"`)
		So(answer, ShouldContainSubstring, "I apologize")
	})
}
