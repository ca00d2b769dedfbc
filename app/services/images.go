package services

import "encoding/json"

// Image lists are stored as JSON-encoded string arrays on catalog and review
// rows.

func encodeImageList(urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return ""
	}
	return string(data)
}

func decodeImageList(raw string) []string {
	if raw == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return nil
	}
	return urls
}
