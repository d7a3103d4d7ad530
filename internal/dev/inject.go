package dev

import (
	"bytes"
	"net/http"
	"strconv"
)

const clientScript = `<script>
(function() {
  var attempts = 0;
  function connect() {
    var protocol = window.location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(protocol + '//' + window.location.host + '` + LiveReloadPath + `');
    ws.onopen = function() { attempts = 0; };
    ws.onmessage = function(e) {
      var msg = JSON.parse(e.data);
      if (msg.type === 'reload') { window.location.reload(); }
    };
    ws.onclose = function() {
      var delay = Math.min(1000 * Math.pow(2, attempts), 5000);
      attempts++;
      setTimeout(connect, delay);
    };
  }
  connect();
})();
</script>`

type bufferingWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *bufferingWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

func (w *bufferingWriter) WriteHeader(status int) {
	w.status = status
}

// InjectScript adds the live reload client before </body> of HTML responses.
func InjectScript(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == LiveReloadPath || r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		bw := &bufferingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(bw, r)

		body := bw.buf.Bytes()
		idx := -1
		if isHTML(body) {
			idx = bytes.LastIndex(body, []byte("</body>"))
		}
		if idx == -1 {
			w.WriteHeader(bw.status)
			w.Write(body)
			return
		}

		w.Header().Set("Content-Length", strconv.Itoa(len(body)+len(clientScript)))
		w.WriteHeader(bw.status)
		w.Write(body[:idx])
		w.Write([]byte(clientScript))
		w.Write(body[idx:])
	})
}

func isHTML(body []byte) bool {
	head := bytes.ToLower(body[:min(1024, len(body))])
	return bytes.Contains(head, []byte("<!doctype")) || bytes.Contains(head, []byte("<html"))
}
