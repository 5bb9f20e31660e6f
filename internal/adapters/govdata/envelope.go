package govdata

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RawRecord is one flat record as delivered by the portal, before field
// mapping. Values are strings or json numbers depending on the wire format.
type RawRecord map[string]interface{}

// envelope is the normalized form of the portal response:
//
//	{ response: { header: { resultCode, resultMsg },
//	              body: { item | items(.item), totalCount } } }
//
// The portal inconsistently serves this as a JSON object, as JSON wrapped in
// a JSON string, or as XML; decodeEnvelope folds all three into this one
// shape so nothing downstream ever branches on the wire format.
type envelope struct {
	ResultCode string
	ResultMsg  string
	TotalCount int
	Items      []RawRecord
	Item       RawRecord
}

func (e *envelope) success() bool {
	code := strings.TrimSpace(e.ResultCode)
	return code == "00" || code == "000"
}

// firstItem returns the single record of a detail response, falling back to
// the head of the item list when a service wraps even single results in a
// list.
func (e *envelope) firstItem() RawRecord {
	if e.Item != nil {
		return e.Item
	}
	if len(e.Items) > 0 {
		return e.Items[0]
	}
	return nil
}

func decodeEnvelope(data []byte) (*envelope, error) {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	switch trimmed[0] {
	case '<':
		root, err := xmlToMap(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse xml envelope: %w", err)
		}
		return envelopeFromMap(root)
	case '"':
		// JSON already parsed upstream and re-serialized as a string.
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, fmt.Errorf("failed to unquote string-wrapped body: %w", err)
		}
		return decodeEnvelope([]byte(inner))
	default:
		var root map[string]interface{}
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("failed to parse json envelope: %w", err)
		}
		return envelopeFromMap(root)
	}
}

func envelopeFromMap(root map[string]interface{}) (*envelope, error) {
	response := root
	if inner, ok := root["response"].(map[string]interface{}); ok {
		response = inner
	}

	env := &envelope{}

	if header, ok := response["header"].(map[string]interface{}); ok {
		env.ResultCode = asString(header["resultCode"])
		env.ResultMsg = asString(header["resultMsg"])
	} else {
		return nil, fmt.Errorf("response envelope has no header")
	}

	body, ok := response["body"].(map[string]interface{})
	if !ok {
		// error envelopes legitimately come without a body
		return env, nil
	}

	env.TotalCount = asInt(body["totalCount"])

	// plural: items, possibly wrapped one level deeper in .item
	if items, present := body["items"]; present {
		env.Items = normalizeItems(items)
	}

	// singular: item directly under body (detail endpoints)
	if item, present := body["item"]; present {
		switch v := item.(type) {
		case map[string]interface{}:
			env.Item = RawRecord(v)
		case []interface{}:
			env.Items = append(env.Items, toRecords(v)...)
		}
	}

	return env, nil
}

// normalizeItems unwraps the items / items.item variance into a flat slice.
// An empty string stands for "no data" in the XML rendering.
func normalizeItems(items interface{}) []RawRecord {
	switch v := items.(type) {
	case []interface{}:
		return toRecords(v)
	case map[string]interface{}:
		switch inner := v["item"].(type) {
		case []interface{}:
			return toRecords(inner)
		case map[string]interface{}:
			return []RawRecord{RawRecord(inner)}
		}
	}
	return nil
}

func toRecords(list []interface{}) []RawRecord {
	records := make([]RawRecord, 0, len(list))
	for _, entry := range list {
		if rec, ok := entry.(map[string]interface{}); ok {
			records = append(records, RawRecord(rec))
		}
	}
	return records
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

// xmlToMap renders an XML document into the same nested map shape the JSON
// decoder produces, so both wire formats share one envelope navigator.
// Repeated sibling elements become a slice, leaf elements become strings.
func xmlToMap(data []byte) (map[string]interface{}, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			value, err := xmlElementValue(dec, start)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{start.Name.Local: value}, nil
		}
	}
}

func xmlElementValue(dec *xml.Decoder, start xml.StartElement) (interface{}, error) {
	children := map[string]interface{}{}
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("unexpected EOF inside <%s>", start.Name.Local)
			}
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			value, err := xmlElementValue(dec, t)
			if err != nil {
				return nil, err
			}
			name := t.Name.Local
			if existing, seen := children[name]; seen {
				if list, isList := existing.([]interface{}); isList {
					children[name] = append(list, value)
				} else {
					children[name] = []interface{}{existing, value}
				}
			} else {
				children[name] = value
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(children) > 0 {
				return children, nil
			}
			return strings.TrimSpace(text.String()), nil
		}
	}
}
