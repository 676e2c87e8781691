package service

import (
	"fmt"
	"regexp"
	"strings"

	"horizon/internal/model"
)

type topicEntry struct {
	topic string
	refs  []model.Reference
}

// topicReferences 主题参考资料表
// 查询文本包含关键词即命中，按声明顺序匹配
var topicReferences = []topicEntry{
	{"git", []model.Reference{
		{
			Title:       "Git Documentation",
			URL:         "https://git-scm.com/doc",
			Description: "Official Git documentation with comprehensive guides and reference materials.",
			Source:      "git-scm.com",
		},
		{
			Title:       "GitHub Guides",
			URL:         "https://guides.github.com/",
			Description: "Essential guides for using Git and GitHub effectively.",
			Source:      "GitHub",
		},
		{
			Title:       "Learn Git Branching",
			URL:         "https://learngitbranching.js.org/",
			Description: "Interactive Git visualization tool for learning Git commands and workflows.",
			Source:      "learngitbranching.js.org",
		},
	}},
	{"javascript", []model.Reference{
		{
			Title:       "MDN JavaScript Guide",
			URL:         "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide",
			Description: "Comprehensive guide to JavaScript for both beginners and advanced developers.",
			Source:      "Mozilla Developer Network",
		},
		{
			Title:       "JavaScript.info",
			URL:         "https://javascript.info/",
			Description: "Modern JavaScript tutorial with detailed explanations and practical examples.",
			Source:      "JavaScript.info",
		},
		{
			Title:       "V8 JavaScript Engine Blog",
			URL:         "https://v8.dev/blog",
			Description: "Technical articles about JavaScript and V8 engine internals.",
			Source:      "V8 Dev",
		},
	}},
	{"react", []model.Reference{
		{
			Title:       "React Documentation",
			URL:         "https://react.dev/",
			Description: "Official React documentation with guides, API references, and best practices.",
			Source:      "React.dev",
		},
		{
			Title:       "React GitHub Repository",
			URL:         "https://github.com/facebook/react",
			Description: "Official React source code and documentation on GitHub.",
			Source:      "GitHub",
		},
		{
			Title:       "React Blog",
			URL:         "https://react.dev/blog",
			Description: "Official React blog with updates, releases, and technical articles.",
			Source:      "React Team",
		},
	}},
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// ReferenceService 参考资料服务
// 主题表命中返回固定链接，否则合成通用文档站链接
type ReferenceService struct{}

// NewReferenceService 创建参考资料服务
func NewReferenceService() *ReferenceService {
	return &ReferenceService{}
}

// Lookup 根据查询文本返回参考链接
// 空查询返回空列表
func (s *ReferenceService) Lookup(query string) []model.Reference {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []model.Reference{}
	}

	normalized := strings.ToLower(trimmed)
	for _, entry := range topicReferences {
		if strings.Contains(normalized, entry.topic) {
			out := make([]model.Reference, len(entry.refs))
			copy(out, entry.refs)
			return out
		}
	}

	slug := whitespacePattern.ReplaceAllString(normalized, "-")
	return []model.Reference{
		{
			Title:       fmt.Sprintf("%s - Documentation and Resources", trimmed),
			URL:         "https://devdocs.io/" + slug,
			Description: fmt.Sprintf("Comprehensive documentation and resources about %s.", trimmed),
			Source:      "DevDocs.io",
		},
		{
			Title:       fmt.Sprintf("%s - Stack Overflow", trimmed),
			URL:         "https://stackoverflow.com/questions/tagged/" + slug,
			Description: fmt.Sprintf("Community questions and answers about %s.", trimmed),
			Source:      "Stack Overflow",
		},
		{
			Title:       fmt.Sprintf("%s - GitHub Topics", trimmed),
			URL:         "https://github.com/topics/" + slug,
			Description: fmt.Sprintf("Open source projects and resources related to %s.", trimmed),
			Source:      "GitHub",
		},
	}
}
