package index

import (
	"strconv"

	"github.com/qdrant/go-client/qdrant"
)

// payloadToMetadata flattens a Qdrant payload into the plain map consumed
// by domain.MovieFromMetadata. Unhandled kinds (structs, nested lists of
// lists) are dropped; the decoder treats absent keys as defaults anyway.
func payloadToMetadata(payload map[string]*qdrant.Value) map[string]any {
	meta := make(map[string]any, len(payload))
	for k, v := range payload {
		if decoded, ok := valueToAny(v); ok {
			meta[k] = decoded
		}
	}
	return meta
}

func valueToAny(v *qdrant.Value) (any, bool) {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue, true
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue, true
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue, true
	case *qdrant.Value_BoolValue:
		return kind.BoolValue, true
	case *qdrant.Value_ListValue:
		items := kind.ListValue.GetValues()
		list := make([]any, 0, len(items))
		for _, item := range items {
			if decoded, ok := valueToAny(item); ok {
				list = append(list, decoded)
			}
		}
		return list, true
	default:
		return nil, false
	}
}

// pointIDString converts a Qdrant point id into the canonical string id.
// Upstream movie ids are numeric; this is the single conversion point.
func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if uuid := id.GetUuid(); uuid != "" {
		return uuid
	}
	return strconv.FormatUint(id.GetNum(), 10)
}

// parsePointID is the inverse conversion for by-id lookups.
func parsePointID(id string) (*qdrant.PointId, error) {
	if num, err := strconv.ParseUint(id, 10, 64); err == nil {
		return qdrant.NewIDNum(num), nil
	}
	if id == "" {
		return nil, strconv.ErrSyntax
	}
	return qdrant.NewID(id), nil
}
