package fermion

import "strconv"

/*
Short for "builder". Tiny text buffer used by every statement type to render
SQL. Appended words are delimited by a single space unless the preceding text
ends with an opening delimiter such as "(" or the appended text begins with a
closing delimiter such as ")" or ",". This is what keeps group parens tight:
"(" + "a = :v0" + ")" renders as "(a = :v0)".
*/
type bui struct {
	Text []byte
}

func makeBui(textCap int) bui { return bui{make([]byte, 0, textCap)} }

// Returns inner text as a string, performing a free cast.
func (self bui) String() string { return bytesToMutableString(self.Text) }

// Appends the provided string, delimiting it from the previous text with a
// space if necessary.
func (self *bui) Str(val string) {
	if val != `` {
		self.Text = appendMaybeSpaced(self.Text, val)
	}
}

// Appends the provided strings joined by ", ".
func (self *bui) Comma(vals []string) {
	for i, val := range vals {
		if i > 0 {
			self.Str(listDelim)
		}
		self.Str(val)
	}
}

// Appends an integer literal.
func (self *bui) Int(val int) { self.Str(strconv.Itoa(val)) }
