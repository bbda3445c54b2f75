package canvas

import (
	"encoding/json"
	"fmt"
)

// Normalize converts a backend response payload of any shape into display
// text. Priority order: a bare string is used verbatim; an "output" field
// wins over a "result" field; string field values pass through while
// structured values are pretty-printed; anything unrecognized is
// pretty-printed whole. The return value is always renderable text.
func Normalize(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		if out, ok := v["output"]; ok {
			if s, ok := out.(string); ok {
				return s
			}
			return prettyJSON(out)
		}
		if res, ok := v["result"]; ok {
			if s, ok := res.(string); ok {
				return s
			}
			return prettyJSON(res)
		}
	}
	return prettyJSON(raw)
}

func prettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
