// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/oggstream/formats/aiff"
)

func ExampleDecoder_Decode_notAiff() {
	_, err := aiff.Decoder{}.Decode(strings.NewReader("not audio"))
	fmt.Println(errors.Is(err, aiff.ErrNotAiffFile))
	// Output: true
}
