package survey

import qrcode "github.com/skip2/go-qrcode"

// renderQR encodes the form URL as a PNG with high error correction, so the
// print survives classroom photocopies. An empty URL still yields a scannable
// placeholder pointing at the local form file.
func renderQR(formURL string) ([]byte, error) {
	if formURL == "" {
		formURL = "befragung.html"
	}
	return qrcode.Encode(formURL, qrcode.High, 512)
}
