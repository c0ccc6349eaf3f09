package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Key builds a deterministic cache key from an entity type, operation,
// positional args, and keyword args. Keyword args are sorted by name so
// logically identical calls always produce the same key. The entity
// type is the leading segment, which lets Invalidate target one entity
// type without touching others.
//
// Example: Key("subtype", "list", []any{1, 20}, map[string]any{"mine_id": id})
// produces "subtype:list:1:20:mine_id=<id>".
func Key(entity, op string, args []any, kwargs map[string]any) string {
	var b strings.Builder
	b.WriteString(entity)
	b.WriteByte(':')
	b.WriteString(op)

	for _, arg := range args {
		b.WriteByte(':')
		b.WriteString(formatArg(arg))
	}

	if len(kwargs) > 0 {
		names := make([]string, 0, len(kwargs))
		for name := range kwargs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteByte(':')
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(formatArg(kwargs[name]))
		}
	}

	return b.String()
}

func formatArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%v", t)
	}
}
