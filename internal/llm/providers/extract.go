package providers

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The extraction contract ported from the original assistant: the model is
// told exactly which fields to fill and must answer with a bare JSON object.
const extractionSystemPrompt = `Bạn là một trợ lý trích xuất dữ liệu chuyên nghiệp. Nhiệm vụ DUY NHẤT của bạn là trích xuất những thông tin cụ thể từ văn bản của người dùng và trả về dưới dạng JSON.

HƯỚNG DẪN:
1. Người dùng sẽ cung cấp một đoạn văn bản.
2. Bạn sẽ được cung cấp một danh sách các trường (fields) cần trích xuất.
3. Câu trả lời của bạn PHẢI CHỈ LÀ một đối tượng JSON chứa dữ liệu đã trích xuất. Không bao gồm bất kỳ văn bản, giải thích hay định dạng markdown nào khác.
4. Nếu không tìm thấy giá trị cho một trường, hãy bỏ qua trường đó.`

func extractionUserPrompt(text string, fields []string) string {
	return fmt.Sprintf("Trích xuất các trường sau: %s\n\nVăn bản: %q", strings.Join(fields, ", "), text)
}

// parseExtraction decodes the model's reply into a flat key/value object,
// tolerating markdown code fences around the JSON.
func parseExtraction(raw string) (map[string]interface{}, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	if cleaned == "" {
		return nil, fmt.Errorf("empty extraction response")
	}
	var values map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &values); err != nil {
		return nil, fmt.Errorf("malformed extraction response: %w", err)
	}
	return values, nil
}
