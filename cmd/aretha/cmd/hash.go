package cmd

import (
	"fmt"
	"strings"

	"github.com/go-aretha/aretha/pkg/util"
)

func init() {
	RegisterCommand(&Command{
		Name:  "md5",
		Short: "Print the MD5 hex digest of text",
		Long: `Print the lowercase hexadecimal MD5 digest of the arguments joined
by single spaces.`,
		Usage: "aretha md5 TEXT...",
		Run: func(args []string) error {
			fmt.Println(util.MD5Hex(strings.Join(args, " ")))
			return nil
		},
	})
	RegisterCommand(&Command{
		Name:  "uuid",
		Short: "Derive a UUID from text",
		Long: `Print a UUID for the given text.

A text that already is a UUID is printed in canonical form. Other text
maps to a name-based (version 3) UUID. Without text, a random UUID is
printed.`,
		Usage: "aretha uuid [TEXT...]",
		Run: func(args []string) error {
			fmt.Println(util.UUIDFromText(strings.Join(args, " ")))
			return nil
		},
	})
}
