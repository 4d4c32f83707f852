package chat

import (
	"github.com/google/uuid"

	"github.com/lavishq/docpilot/internal/doctmpl"
	"github.com/lavishq/docpilot/internal/llm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// GeneratedDocument pairs a template with a filled payload ready for
// rendering and export.
type GeneratedDocument struct {
	Template doctmpl.Template `json:"template"`
	Data     doctmpl.Payload  `json:"data"`
}

// Message is one entry in the append-only conversation. Template choices
// carry identifiers only; the controller resolves them against the catalog
// when selection affordances are rendered.
type Message struct {
	ID              string             `json:"id"`
	Role            string             `json:"role"`
	Text            string             `json:"text,omitempty"`
	TemplateChoices []string           `json:"template_choices,omitempty"`
	Document        *GeneratedDocument `json:"document,omitempty"`
	Sources         []llm.Source       `json:"sources,omitempty"`
}

func newMessageID() string {
	return uuid.NewString()
}

func textMessage(role, text string) Message {
	return Message{ID: newMessageID(), Role: role, Text: text}
}

// Conversation texts ported from the original assistant.
const (
	greetingText       = "Xin chào! Tôi có thể giúp bạn tạo tài liệu. Bạn muốn sử dụng mẫu nào?"
	noLearnedFieldsMsg = "Chưa có trường thông tin nào được 'học' cho mẫu này. Vui lòng hoàn tất lần chỉnh sửa đầu tiên."
	extractionFailMsg  = "Xin lỗi, tôi đã gặp sự cố kỹ thuật khi trích xuất dữ liệu. Phản hồi của AI có thể không hợp lệ. Vui lòng thử diễn đạt lại yêu cầu của bạn."
	automatedAckFmt    = "Tuyệt vời! Tôi thấy bạn đã dùng mẫu \"%s\" trước đây. Vui lòng cung cấp thông tin mới cho các mục bạn đã chỉnh sửa, tôi sẽ tự động tạo tài liệu."
	editorAckFmt       = "Bắt đầu một tài liệu mới với mẫu \"%s\". Tôi sẽ mở trình chỉnh sửa để bạn thay đổi. Tôi sẽ ghi nhớ các mục bạn chỉnh sửa cho lần sau!"
	editCompleteFmt    = "Đã lưu tài liệu \"%s\". Tôi sẽ ghi nhớ các mục bạn đã chỉnh sửa cho lần sau."
	selectionFmt       = "Tôi chọn: %s"
)
