package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	Convey("JWT 生成和验证Token", t, func() {
		j := NewJWT("test-secret", time.Hour)

		Convey("生成的Token能通过验证并还原Claims", func() {
			token, err := j.GenerateToken("user-1", "alice", "user")
			So(err, ShouldBeNil)
			So(token, ShouldNotBeEmpty)

			claims, err := j.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, "user-1")
			So(claims.Username, ShouldEqual, "alice")
			So(claims.Role, ShouldEqual, "user")
		})

		Convey("密钥不匹配时验证失败", func() {
			token, err := j.GenerateToken("user-1", "alice", "user")
			So(err, ShouldBeNil)

			other := NewJWT("other-secret", time.Hour)
			_, err = other.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("过期Token返回 ErrExpiredToken", func() {
			expired := NewJWT("test-secret", -time.Minute)
			token, err := expired.GenerateToken("user-1", "alice", "user")
			So(err, ShouldBeNil)

			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})

		Convey("非法字符串返回 ErrInvalidToken", func() {
			_, err := j.ValidateToken("not-a-token")
			So(err, ShouldEqual, ErrInvalidToken)
		})
	})
}

func TestGenerateRefreshToken(t *testing.T) {
	Convey("GenerateRefreshToken 生成随机Token", t, func() {
		a := GenerateRefreshToken()
		b := GenerateRefreshToken()

		So(a, ShouldNotBeEmpty)
		So(len(a), ShouldEqual, 64)
		So(a, ShouldNotEqual, b)
	})
}
