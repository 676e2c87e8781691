package service

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestReferenceService_Lookup(t *testing.T) {
	Convey("ReferenceService.Lookup 返回参考链接", t, func() {
		svc := NewReferenceService()

		Convey("主题关键词命中时返回固定链接", func() {
			refs := svc.Lookup("how do I use git branches")
			So(len(refs), ShouldEqual, 3)
			So(refs[0].Title, ShouldEqual, "Git Documentation")
			So(refs[0].URL, ShouldEqual, "https://git-scm.com/doc")
		})

		Convey("匹配忽略大小写", func() {
			refs := svc.Lookup("React Hooks")
			So(len(refs), ShouldEqual, 3)
			So(refs[0].Title, ShouldEqual, "React Documentation")
		})

		Convey("未命中主题时合成通用链接", func() {
			refs := svc.Lookup("rust ownership")
			So(len(refs), ShouldEqual, 3)
			So(refs[0].URL, ShouldEqual, "https://devdocs.io/rust-ownership")
			So(refs[1].URL, ShouldEqual, "https://stackoverflow.com/questions/tagged/rust-ownership")
			So(refs[2].URL, ShouldEqual, "https://github.com/topics/rust-ownership")
			So(refs[0].Title, ShouldContainSubstring, "rust ownership")
		})

		Convey("空查询返回空列表", func() {
			refs := svc.Lookup("   ")
			So(refs, ShouldBeEmpty)
		})
	})
}
