package common

import (
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 generates a process-unique int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// IsEmptyOrNA reports whether the value carries no usable content.
func IsEmptyOrNA(val string) bool {
	v := strings.TrimSpace(val)
	return v == "" || v == "N/A"
}

// FileExists checks regular file existence.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// InSlice reports whether v is contained in vals.
func InSlice(v string, vals []string) bool {
	for _, s := range vals {
		if s == v {
			return true
		}
	}
	return false
}
