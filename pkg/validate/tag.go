package validate

import (
	"reflect"
	"strings"
)

// tagName 依次使用 yaml、json tag 作为错误信息中的字段名。
func tagName(f reflect.StructField) string {
	for _, key := range []string{"yaml", "json"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
