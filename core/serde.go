package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/bndr/gotabulate"
)

const (
	ResourceTypeKey = "@resourceType"
	customRawKey    = "@raw" // used to store raw non-object values in Record
)

var empty = struct{}{}

// Attributes promoted to the top of tabular output. Everything else is
// collapsed into a single JSON cell.
var printableAttrs = map[string]struct{}{
	"id":        empty,
	"title":     empty,
	"name":      empty,
	"email":     empty,
	"username":  empty,
	"key":       empty,
	"state":     empty,
	"right":     empty,
	"sourceKey": empty,
	"connected": empty,
	"enabled":   empty,
	"tag_name":  empty,
}

type FillFunc func(Record, any) error

var fillFunc FillFunc = func(r Record, container any) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, container)
}

//  ######################################################
//              FUNCTION PARAMS
//  ######################################################

// Params represents a generic set of key-value parameters,
// used for constructing query strings or request bodies.
type Params map[string]any

// ToQuery serializes the Params into a URL-encoded query string.
// This is useful for GET requests where parameters are passed via the URL.
func (pr *Params) ToQuery() string {
	return convertMapToQuery(*pr)
}

// ToBody serializes the Params into a JSON-encoded io.Reader,
// suitable for use as the body of an HTTP POST, PUT, or PATCH request.
func (pr *Params) ToBody() (io.Reader, error) {
	buffer, err := json.Marshal(*pr)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(buffer), nil
}

// Update merges another Params map into the original Params.
// Keys that already exist are kept unless override is set.
func (pr *Params) Update(other Params, override bool) {
	for key, value := range other {
		if _, exists := (*pr)[key]; exists && !override {
			continue
		}
		(*pr)[key] = value
	}
}

// Without removes the specified keys from the Params map.
func (pr *Params) Without(keys ...string) {
	for _, key := range keys {
		delete(*pr, key)
	}
}

// FromStruct converts any struct to Params, using json tags as keys.
// Fields tagged with ",omitempty" are skipped when they hold their zero
// value, so optional arguments the caller never set are absent from the
// outgoing request instead of being sent as null/empty.
func (pr *Params) FromStruct(obj any) error {
	if obj == nil {
		return nil
	}
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct or pointer to struct, got %T", obj)
	}
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := val.Field(i)
		if !field.CanInterface() {
			continue
		}
		tagName, omitEmpty := parseJSONTag(typ.Field(i).Tag.Get("json"))
		if tagName == "" || tagName == "-" {
			continue
		}
		if omitEmpty && field.IsZero() {
			continue
		}
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				(*pr)[tagName] = nil
				continue
			}
			field = field.Elem()
		}
		(*pr)[tagName] = field.Interface()
	}
	return nil
}

// NewParamsFromStruct creates a new Params map from any struct, respecting json tags.
func NewParamsFromStruct(obj any) (Params, error) {
	params := make(Params)
	err := params.FromStruct(obj)
	return params, err
}

// parseJSONTag splits a json struct tag into its name and omitempty flag.
func parseJSONTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

//  ######################################################
//              RETURN TYPES
//  ######################################################

// getPrintableAttrs returns a sorted slice of keys to be printed from the Record.
func getPrintableAttrs(r Record) []string {
	var attrs []string
	for key := range r {
		if _, ok := printableAttrs[key]; ok {
			attrs = append(attrs, key)
		}
	}
	sort.Strings(attrs)
	return attrs
}

// Renderable is an interface implemented by types that can render themselves
// into a human-readable string format, typically for CLI display or logging.
type Renderable interface {
	PrettyTable() string
	PrettyJson(indent ...string) string
}

// Filler is a generic interface for filling a struct or slice of structs.
type Filler interface {
	// Fill populates the given container with data from the implementing type.
	// The container can be a pointer to a struct (for Record),
	// or a pointer to a slice of structs (for RecordSet).
	Fill(container any) error
}

// DisplayableRecord combines rendering and data population capabilities.
// It is implemented by Record and RecordSet, allowing generic handling of
// different response shapes (single item or list).
type DisplayableRecord interface {
	Renderable
	Filler
}

// Record represents a single generic data object as a key-value map.
// It's commonly used to unmarshal a single JSON object from an API response.
// When a response is empty (e.g., 204 No Content), an empty Record{} is returned.
type Record map[string]any

// RecordSet represents a list of Record objects.
// It is typically used to represent responses containing multiple items.
type RecordSet []Record

// RecordUnion defines a union of supported record types for generic operations.
// It can be a single Record or a RecordSet.
type RecordUnion interface {
	Record | RecordSet
}

// Fill populates the exported fields of the given struct pointer using values
// from the Record. It uses JSON marshaling and unmarshaling to map keys to
// struct fields based on their `json` tags.
func (r Record) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a struct")
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("container must point to a struct")
	}
	return fillFunc(r, container)
}

// RecordID returns the ID of the record as an int64.
// It looks up the "id" field in the record map.
func (r Record) RecordID() int64 {
	idVal, ok := r["id"]
	if !ok {
		panic(fmt.Sprintf("record id not found in record %s", r.PrettyTable()))
	}
	intIdVal, err := toInt(idVal)
	if err != nil {
		panic(err)
	}
	return intIdVal
}

// RecordTitle returns the title of the record as a string.
// It looks up the "title" field in the record map.
func (r Record) RecordTitle() string {
	titleVal, ok := r["title"]
	if !ok {
		panic(fmt.Sprintf("record title not found in record %s", r.PrettyTable()))
	}
	return fmt.Sprintf("%v", titleVal)
}

// RecordEmail returns the email of the record as a string.
// It looks up the "email" field in the record map.
func (r Record) RecordEmail() string {
	emailVal, ok := r["email"]
	if !ok {
		panic(fmt.Sprintf("record email not found in record %s", r.PrettyTable()))
	}
	return fmt.Sprintf("%v", emailVal)
}

// SetMissingValue sets the key to the provided value if it is not present.
func (r Record) SetMissingValue(key string, value any) {
	if _, exists := r[key]; !exists {
		r[key] = value
	}
}

// PrettyTable prints a single Record as a table.
func (r Record) PrettyTable() string {
	headers := []string{"attr", "value"}
	var rows [][]any
	var name string
	if resourceTyp, ok := r[ResourceTypeKey]; ok {
		name = resourceTyp.(string)
	}
	if len(r) == 0 {
		return "<>"
	}
	for _, key := range getPrintableAttrs(r) {
		if val, ok := r[key]; ok && val != nil {
			rows = append(rows, []any{key, fmt.Sprintf("%v", val)})
		}
	}
	remainingAttrs := make(map[string]any)
	for key, value := range r {
		if _, ok := printableAttrs[key]; !ok {
			if key == ResourceTypeKey || value == nil {
				continue
			}
			remainingAttrs[key] = value
		}
	}
	if len(remainingAttrs) > 0 {
		remainingJSON, _ := json.Marshal(remainingAttrs)
		rows = append(rows, []any{"<<remaining attrs>>", string(remainingJSON)})
	}
	t := gotabulate.Create(rows)
	t.SetHeaders(headers)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	if name != "" {
		return fmt.Sprintf("%s:\n%s", name, t.Render("grid"))
	}
	return fmt.Sprintf("\n%s", t.Render("grid"))
}

// PrettyJson prints the Record as JSON, optionally indented.
func (r Record) PrettyJson(indent ...string) string {
	var b []byte
	var err error
	if len(indent) > 0 {
		b, err = json.MarshalIndent(r, "", indent[0])
	} else {
		b, err = json.Marshal(r)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

func (r Record) Empty() bool {
	return len(r) == 0
}

func (r Record) String() string {
	return r.PrettyTable()
}

// Fill populates the provided container slice with data from the RecordSet.
// The container must be a non-nil pointer to a slice of structs (or pointers
// to structs). Each Record is individually filled into one element.
func (rs RecordSet) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a slice")
	}

	sliceVal := val.Elem()
	if sliceVal.Kind() != reflect.Slice {
		return fmt.Errorf("container must point to a slice")
	}

	elemType := sliceVal.Type().Elem()
	isPtrElem := elemType.Kind() == reflect.Ptr

	var targetType reflect.Type
	if isPtrElem {
		if elemType.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("slice element must be pointer to a struct")
		}
		targetType = elemType.Elem()
	} else {
		if elemType.Kind() != reflect.Struct {
			return fmt.Errorf("slice element must be a struct")
		}
		targetType = elemType
	}

	for _, record := range rs {
		elemPtr := reflect.New(targetType)
		if err := record.Fill(elemPtr.Interface()); err != nil {
			return err
		}
		if isPtrElem {
			sliceVal.Set(reflect.Append(sliceVal, elemPtr))
		} else {
			sliceVal.Set(reflect.Append(sliceVal, elemPtr.Elem()))
		}
	}
	return nil
}

// PrettyTable prints the full RecordSet by rendering each individual Record.
func (rs RecordSet) PrettyTable() string {
	if len(rs) == 0 {
		return "[]"
	}
	var out strings.Builder
	out.WriteString("[\n")
	for i, record := range rs {
		out.WriteString(record.PrettyTable())
		if i < len(rs)-1 {
			out.WriteString("\n\n")
		}
	}
	out.WriteString("\n]")
	return out.String()
}

func (rs RecordSet) Empty() bool {
	return len(rs) == 0
}

// PrettyJson prints the RecordSet as JSON, optionally indented.
func (rs RecordSet) PrettyJson(indent ...string) string {
	var b []byte
	var err error
	if len(indent) > 0 {
		b, err = json.MarshalIndent(rs, "", indent[0])
	} else {
		b, err = json.Marshal(rs)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

// unmarshalToRecordUnion parses an HTTP response body into one of the supported
// record types:
//   - Record: a map representing a single JSON object (empty Record{} for empty
//     responses or 204 No Content).
//   - RecordSet: a slice of Records representing a JSON array.
//
// It inspects the first non-whitespace character of the response body to
// determine which shape to unmarshal into. Scalar JSON values are wrapped in a
// Record under the raw key.
func unmarshalToRecordUnion(response *http.Response) (Renderable, error) {
	defer response.Body.Close()

	if response.ContentLength == 0 || response.StatusCode == http.StatusNoContent {
		return Record{}, nil
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Record{}, nil
	}
	switch trimmed[0] {
	case '{': // JSON object
		var rec Record
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, err
		}
		return rec, nil
	case '[': // JSON array
		var recSet RecordSet
		if err := json.Unmarshal(body, &recSet); err == nil {
			return recSet, nil
		}
		// Not an array of objects. Convert each item to a raw Record.
		var anySlice []any
		if err := json.Unmarshal(body, &anySlice); err != nil {
			return nil, err
		}
		recordSet := make(RecordSet, len(anySlice))
		for i, item := range anySlice {
			recordSet[i] = Record{customRawKey: item}
		}
		return recordSet, nil
	case '"': // string
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, err
		}
		return Record{customRawKey: s}, nil
	default:
		return nil, fmt.Errorf("unsupported JSON format: must be object or array")
	}
}

// typeMatch checks whether the dynamic type of given Renderable value
// matches the generic type T at runtime.
func typeMatch[T RecordUnion](val Renderable) bool {
	var zero T
	return reflect.TypeOf(val) == reflect.TypeOf(zero)
}

// setResourceKey sets resource type key for tabular formatting (only if not already set).
func setResourceKey(result Renderable, resourceType string) error {
	switch v := result.(type) {
	case Record:
		if _, ok := v[ResourceTypeKey]; !ok && len(v) > 0 {
			v[ResourceTypeKey] = resourceType
		}
		return nil
	case RecordSet:
		for _, rec := range v {
			if _, ok := rec[ResourceTypeKey]; !ok && len(rec) > 0 {
				rec[ResourceTypeKey] = resourceType
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported type")
	}
}

// ToRecord converts a plain map into a Record.
func ToRecord(m map[string]any) Record {
	converted := Record{}
	for k, v := range m {
		converted[k] = v
	}
	return converted
}

func toInt(val any) (int64, error) {
	var idInt int64
	switch v := val.(type) {
	case int64:
		idInt = v
	case float64:
		idInt = int64(v)
	case int:
		idInt = int64(v)
	default:
		return 0, fmt.Errorf("unexpected type for id field: %T", v)
	}
	return idInt, nil
}
