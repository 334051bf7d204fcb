package terminal

import (
	"crypto/md5"

	"github.com/valyala/bytebufferpool"
)

// ContentHash is the dedup key of an upload: md5 over header followed by payload.
func ContentHash(header, payload []byte) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.Write(header)
	_, _ = buf.Write(payload)
	sum := md5.Sum(buf.B)
	return sum[:]
}
