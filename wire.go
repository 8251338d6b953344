package headers

import (
	"bufio"
	"io"
	"net/http"
	"net/textproto"

	"golang.org/x/net/http/httpguts"
)

// FromHTTPHeader returns a new instance of the `Headers` seeded from the hh.
// The keys of the hh are processed in sorted order.
func FromHTTPHeader(hh http.Header) *Headers {
	h := &Headers{}
	for _, n := range sortedNames(hh) {
		MultiValue(hh[n]).seed(h, n)
	}

	return h
}

// HTTPHeader returns the h as an `http.Header` whose keys are canonicalized by
// the `textproto.CanonicalMIMEHeaderKey()`.
func (h *Headers) HTTPHeader() http.Header {
	hh := make(http.Header, len(h.m))
	for _, n := range h.Names() {
		k := textproto.CanonicalMIMEHeaderKey(n)
		hh[k] = append(hh[k], h.m[n]...)
	}

	return hh
}

// ReadHeaders reads a MIME-style header block from the r up to and including
// the blank line that ends it.
func ReadHeaders(r *bufio.Reader) (*Headers, error) {
	mh, err := textproto.NewReader(r).ReadMIMEHeader()
	if err != nil && (err != io.EOF || len(mh) == 0) {
		return nil, err
	}

	return FromHTTPHeader(http.Header(mh)), nil
}

// WriteTo implements the `io.WriterTo`. It writes one "name: value\r\n" line
// per value, with the names sorted and the values in their order. Fields that
// are not valid on the wire are skipped. The returned count is the number of
// bytes that reached the w.
func (h *Headers) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	for _, name := range h.Names() {
		if !httpguts.ValidHeaderFieldName(name) {
			DEBUG(
				"headers: skipped invalid field name",
				map[string]interface{}{
					"name": name,
				},
			)

			continue
		}

		for _, v := range h.m[name] {
			if !httpguts.ValidHeaderFieldValue(v) {
				DEBUG(
					"headers: skipped invalid field value",
					map[string]interface{}{
						"name": name,
					},
				)

				continue
			}

			if _, err := bw.WriteString(
				name + ": " + v + "\r\n",
			); err != nil {
				return cw.n, err
			}
		}
	}

	err := bw.Flush()

	return cw.n, err
}

// countingWriter counts the bytes that reach the w.
type countingWriter struct {
	w io.Writer
	n int64
}

// Write implements the `io.Writer`.
func (cw *countingWriter) Write(b []byte) (int, error) {
	n, err := cw.w.Write(b)
	cw.n += int64(n)
	return n, err
}
