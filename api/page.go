package api

import (
	"net/http"

	"github.com/openclaw/qrdesigner/designer"
)

type pageData struct {
	Version  string
	Color    string
	Format   string
	Formats  []string
	Guidance string
	MaxLogo  int64
}

func (s *Server) handleDesignerPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	err := s.page.Execute(w, pageData{
		Version:  s.Version,
		Color:    designer.HexColor(s.DefaultColor),
		Format:   string(s.DefaultFormat),
		Formats:  formatNames(),
		Guidance: designer.GuidanceMessage,
		MaxLogo:  s.MaxLogoBytes,
	})
	if err != nil {
		s.Log.Error("render designer page", "error", err)
	}
}

const designerPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>QR Code Designer</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #0a0a0a;
    color: #e0e0e0;
    display: flex;
    justify-content: center;
    align-items: flex-start;
    min-height: 100vh;
    padding-top: 32px;
  }
  .layout { display: flex; gap: 24px; flex-wrap: wrap; justify-content: center; }
  .card {
    background: #1a1a1a;
    border: 1px solid #333;
    border-radius: 16px;
    padding: 32px;
    width: 360px;
  }
  h1 { font-size: 20px; font-weight: 600; margin-bottom: 8px; }
  .subtitle { color: #888; font-size: 14px; margin-bottom: 24px; }
  label { display: block; font-size: 13px; color: #aaa; margin: 16px 0 6px; }
  input[type=text], select, input[type=file] {
    width: 100%;
    padding: 8px;
    background: #0f0f0f;
    border: 1px solid #333;
    border-radius: 8px;
    color: #e0e0e0;
  }
  input[type=color] { width: 64px; height: 32px; border: none; background: none; }
  button {
    margin-top: 24px;
    width: 100%;
    padding: 10px;
    border: none;
    border-radius: 8px;
    background: #4ade80;
    color: #0a0a0a;
    font-weight: 600;
    cursor: pointer;
  }
  button:disabled { background: #333; color: #666; cursor: default; }
  #preview {
    min-height: 300px;
    display: flex;
    align-items: center;
    justify-content: center;
    text-align: center;
  }
  #preview img {
    max-width: 300px;
    border-radius: 8px;
    box-shadow: 0px 10px 30px rgba(0,0,0,0.1);
  }
  #caption { color: #888; font-size: 13px; margin-top: 12px; text-align: center; }
  .info { color: #888; font-size: 14px; }
  .alert { color: #f87171; font-size: 14px; }
</style>
</head>
<body>
<div class="layout">
  <form class="card" id="form" method="post" action="/generate" enctype="multipart/form-data">
    <h1>QR Code Designer</h1>
    <p class="subtitle">Generate high-quality QR codes within seconds.</p>

    <label for="text">URL or Text</label>
    <input type="text" id="text" name="text" placeholder="https://google.com" autocomplete="off">

    <label for="color">QR Code Color</label>
    <input type="color" id="color" name="color" value="{{.Color}}">

    <label for="logo">Center Logo (optional, PNG or JPEG)</label>
    <input type="file" id="logo" name="logo" accept="image/png,image/jpeg" data-max="{{.MaxLogo}}">

    <label for="format">Export Format</label>
    <select id="format" name="format">
      {{range .Formats}}<option value="{{.}}"{{if eq . $.Format}} selected{{end}}>{{.}}</option>
      {{end}}
    </select>

    <button type="submit" id="download" disabled>Download</button>
  </form>

  <div class="card">
    <div id="preview"><span class="info">{{.Guidance}}</span></div>
    <div id="caption"></div>
  </div>
</div>
<script>
(function() {
  var form = document.getElementById('form');
  var preview = document.getElementById('preview');
  var caption = document.getElementById('caption');
  var download = document.getElementById('download');
  var guidance = {{.Guidance}};
  var timer = null;

  function clearChildren(el) {
    while (el.firstChild) el.removeChild(el.firstChild);
  }

  function show(cls, text) {
    clearChildren(preview);
    var span = document.createElement('span');
    span.className = cls;
    span.textContent = text;
    preview.appendChild(span);
    caption.textContent = '';
  }

  function refresh() {
    if (!document.getElementById('text').value) {
      download.disabled = true;
      show('info', guidance);
      return;
    }
    fetch('/preview', { method: 'POST', body: new FormData(form) })
      .then(function(r) { return r.json(); })
      .then(function(data) {
        if (data.error) {
          download.disabled = true;
          show('alert', data.error);
          return;
        }
        if (data.status !== 'ok') {
          download.disabled = true;
          show('info', data.message || guidance);
          return;
        }
        clearChildren(preview);
        var img = document.createElement('img');
        img.setAttribute('alt', 'QR Code');
        img.setAttribute('src', 'data:image/png;base64,' + data.preview_png);
        preview.appendChild(img);
        caption.textContent = data.message;
        download.textContent = 'Download ' + data.filename;
        download.disabled = false;
      })
      .catch(function() {
        show('alert', 'Connection error, please try again.');
      });
  }

  function schedule() {
    if (timer) clearTimeout(timer);
    timer = setTimeout(refresh, 250);
  }

  form.addEventListener('input', schedule);
  form.addEventListener('change', schedule);
})();
</script>
</body>
</html>`
