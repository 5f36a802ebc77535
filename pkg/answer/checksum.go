package answer

import (
	"crypto/md5"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/cloudpine/rubbertree/pkg/types"
)

var twoPow128 = new(big.Int).Lsh(big.NewInt(1), 128)

// Checksum computes the checksum of a record entry's data-bearing fields
// in string form. The result becomes part of DNS names, so the encoding
// is a stability contract: the UTF-8 bytes of the type, then either the
// alias target (zone id, DNS name, "true"/"false" for target-health
// evaluation) or the record values rendered as "[v1 v2 ...]" followed by
// the decimal TTL, hashed with MD5 and printed as a signed big-endian
// integer in lowercase base 36.
func Checksum(entry types.RecordEntry) string {
	digest := md5.New()
	io.WriteString(digest, entry.Type)

	if entry.Alias != nil {
		io.WriteString(digest, entry.Alias.HostedZoneID)
		io.WriteString(digest, entry.Alias.DNSName)
		io.WriteString(digest, strconv.FormatBool(entry.Alias.EvaluateTargetHealth))
	} else {
		io.WriteString(digest, "["+strings.Join(entry.Values, " ")+"]")
		io.WriteString(digest, strconv.FormatInt(entry.TTL, 10))
	}

	sum := digest.Sum(nil)

	// Interpret the 16 digest bytes as a signed two's-complement
	// big-endian integer, then render in base 36.
	n := new(big.Int).SetBytes(sum)
	if sum[0]&0x80 != 0 {
		n.Sub(n, twoPow128)
	}
	return n.Text(36)
}
