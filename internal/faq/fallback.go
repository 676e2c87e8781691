package faq

import (
	"fmt"
	"strings"
)

// fallbackEntry 兜底应答条目
// 远程补全失败后按声明顺序做包含匹配，命中第一个即返回
type fallbackEntry struct {
	keyword string
	answer  string
}

// fallbacks 礼貌性兜底应答表
// 只覆盖问候/寒暄类输入，知识类问题走最终兜底
var fallbacks = []fallbackEntry{
	{"hello", "Hello! How can I help you today?"},
	{"hi", "Hi there! What would you like to know?"},
	{"hey", "Hey! What can I do for you?"},
	{"good morning", "Good morning! How can I assist you?"},
	{"good evening", "Good evening! How can I assist you?"},
	{"how are you", "I'm doing well, thank you for asking! How can I help you?"},
	{"who are you", "I'm Horizon AI, an assistant that answers technical questions. Ask me anything!"},
	{"thank", "You're welcome! Feel free to ask if you have more questions."},
	{"bye", "Goodbye! Have a great day."},
	{"help", "You can ask me questions about programming, web development, databases, security, cloud computing and more."},
}

// FallbackAnswer 在兜底应答表中查找
func FallbackAnswer(question string) (string, bool) {
	normalized := Normalize(question)
	if normalized == "" {
		return "", false
	}

	for _, f := range fallbacks {
		if strings.Contains(normalized, f.keyword) {
			return f.answer, true
		}
	}

	return "", false
}

// ApologyAnswer 最终兜底应答
// 回显用户原始问题，保证响应永远非空
func ApologyAnswer(question string) string {
	return fmt.Sprintf("I apologize, but I couldn't find an answer to %q. Please try again with a different question.", question)
}
