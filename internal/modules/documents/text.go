package documents

import "strings"

// decodeText decodes raw bytes as UTF-8, dropping invalid byte sequences
// instead of failing. The contract is drop, not substitute, so the output
// never contains replacement runes for bad input.
func decodeText(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "")
}

// extractText produces the text stored on the catalog record: best-effort
// decoded and with every NUL stripped (NULs break downstream consumers
// that treat the column as a C string).
func extractText(raw []byte) string {
	return strings.ReplaceAll(decodeText(raw), "\x00", "")
}
