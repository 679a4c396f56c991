package mom

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/johnquangdev/mom-service/internal/domain/entities"
)

// NormalizeAttendees accepts plain names or {"name": ...} objects. Entries
// without a usable name are dropped; the second return value counts them.
func NormalizeAttendees(raw []json.RawMessage) ([]entities.Attendee, int) {
	attendees := make([]entities.Attendee, 0, len(raw))
	dropped := 0
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err != nil {
			var obj struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				dropped++
				continue
			}
			name = obj.Name
		}
		name = strings.TrimSpace(name)
		if name == "" {
			dropped++
			continue
		}
		attendees = append(attendees, entities.Attendee{Name: name})
	}
	return attendees, dropped
}

// NormalizeImages accepts base64 strings (data URLs included) or
// {"data", "width", "height"} objects. Sizes may be numbers or numeric
// strings and are capped at MaxImageDimension; missing or unusable sizes get
// the defaults. Entries without data are dropped.
func NormalizeImages(raw []json.RawMessage) ([]entities.Image, int) {
	images := make([]entities.Image, 0, len(raw))
	dropped := 0
	for _, item := range raw {
		img := entities.Image{}
		var data string
		if err := json.Unmarshal(item, &data); err == nil {
			img.Data = data
		} else {
			var obj struct {
				Data   string          `json:"data"`
				Width  json.RawMessage `json:"width"`
				Height json.RawMessage `json:"height"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				dropped++
				continue
			}
			img.Data = obj.Data
			img.Width = parseDimension(obj.Width)
			img.Height = parseDimension(obj.Height)
		}

		img.Data = strings.TrimSpace(img.Data)
		if img.Data == "" {
			dropped++
			continue
		}
		if img.Width == 0 {
			img.Width = entities.DefaultImageWidth
		}
		if img.Height == 0 {
			img.Height = entities.DefaultImageHeight
		}
		images = append(images, img)
	}
	return images, dropped
}

// parseDimension reads a pixel size given as a JSON number or numeric string.
// It returns 0 when the value is absent, non-positive or not a number.
func parseDimension(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		if n, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0
		}
	}
	if !(n >= 1) {
		return 0
	}
	if n > entities.MaxImageDimension {
		return entities.MaxImageDimension
	}
	return int(n)
}
