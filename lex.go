package bindly

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
	"strings"
)

const (
	whitespaceToken = iota
	comaTerminatorToken
)

var (
	whitespaceMatcher     = parsly.NewToken(whitespaceToken, " ", matcher.NewWhiteSpace())
	comaTerminatorMatcher = parsly.NewToken(comaTerminatorToken, "coma", matcher.NewTerminator(',', true))
)

//parseNames extracts member name tokens from a "a, sub" style declaration
func parseNames(declaration string) []string {
	var result []string
	cursor := parsly.NewCursor("", []byte(declaration), 0)
	for cursor.Pos < len(cursor.Input) {
		value := ""
		match := cursor.MatchAfterOptional(whitespaceMatcher, comaTerminatorMatcher)
		switch match.Code {
		case comaTerminatorToken:
			value = match.Text(cursor)
			value = value[:len(value)-1] //exclude ,
		default:
			value = string(cursor.Input[cursor.Pos:])
			cursor.Pos = len(cursor.Input)
		}
		result = append(result, strings.Fields(value)...)
	}
	return result
}
