package translate

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
)

// SlackMessage is the subset of the Slack incoming-webhook format the relay
// understands. Unknown fields are ignored.
type SlackMessage struct {
	Text        string            `json:"text"`
	Username    string            `json:"username"`
	IconURL     string            `json:"icon_url"`
	Attachments []SlackAttachment `json:"attachments"`
}

type SlackAttachment struct {
	Title      string       `json:"title"`
	TitleLink  string       `json:"title_link"`
	Text       string       `json:"text"`
	ImageURL   string       `json:"image_url"`
	Color      Scalar       `json:"color"`
	Fields     []SlackField `json:"fields"`
	Footer     string       `json:"footer"`
	FooterIcon string       `json:"footer_icon"`
}

type SlackField struct {
	Title string `json:"title"`
	Value Scalar `json:"value"`
	Short bool   `json:"short"`
}

var scalarType = reflect.TypeFor[Scalar]()

// Scalar accepts a JSON string, number or boolean and keeps its text form.
// Senders are inconsistent about quoting colors and field values.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case float64:
		*s = Scalar(string(data))
	case bool:
		*s = Scalar(strconv.FormatBool(v))
	default:
		return &json.UnmarshalTypeError{Value: "object", Type: scalarType}
	}
	return nil
}
