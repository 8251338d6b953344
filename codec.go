package headers

import (
	"encoding/json"
	"sort"

	structpb "github.com/golang/protobuf/ptypes/struct"
	"github.com/vmihailenco/msgpack"
)

// MarshalJSON implements the `json.Marshaler`. It encodes the `Raw()` of the
// h.
func (h *Headers) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Raw())
}

// UnmarshalJSON implements the `json.Unmarshaler`. It accepts a JSON object
// whose members are strings or arrays and replaces the contents of the h the
// way the `New` seeds them.
func (h *Headers) UnmarshalJSON(b []byte) error {
	m := map[string]interface{}{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	h.m = New(m).m

	return nil
}

// EncodeMsgpack implements the `msgpack.CustomEncoder`.
func (h *Headers) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(h.m)
}

// DecodeMsgpack implements the `msgpack.CustomDecoder`. It replaces the
// contents of the h.
func (h *Headers) DecodeMsgpack(dec *msgpack.Decoder) error {
	m := map[string][]string{}
	if err := dec.Decode(&m); err != nil {
		return err
	}

	h.reset()
	for _, n := range sortedNames(m) {
		MultiValue(m[n]).seed(h, n)
	}

	return nil
}

// ProtoStruct returns the h as a `structpb.Struct` whose fields are lists of
// string values.
func (h *Headers) ProtoStruct() *structpb.Struct {
	s := &structpb.Struct{
		Fields: make(map[string]*structpb.Value, len(h.m)),
	}

	for n, vs := range h.m {
		lv := &structpb.ListValue{
			Values: make([]*structpb.Value, 0, len(vs)),
		}

		for _, v := range vs {
			lv.Values = append(lv.Values, &structpb.Value{
				Kind: &structpb.Value_StringValue{
					StringValue: v,
				},
			})
		}

		s.Fields[n] = &structpb.Value{
			Kind: &structpb.Value_ListValue{
				ListValue: lv,
			},
		}
	}

	return s
}

// FromProtoStruct returns a new instance of the `Headers` seeded from the s. A
// string field is set and a list field appends its string items. Any other
// field or list item is skipped. The fields are processed in sorted order.
func FromProtoStruct(s *structpb.Struct) *Headers {
	fields := s.GetFields()

	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}

	sort.Strings(names)

	h := &Headers{}
	for _, n := range names {
		switch k := fields[n].GetKind().(type) {
		case *structpb.Value_StringValue:
			h.Set(n, k.StringValue)
		case *structpb.Value_ListValue:
			for _, lv := range k.ListValue.GetValues() {
				if sv, ok := lv.GetKind().(*structpb.Value_StringValue); ok {
					h.Append(n, sv.StringValue)
				}
			}
		}
	}

	return h
}
