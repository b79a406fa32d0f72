package web

import "html/template"

var page = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
</head>
<body style="margin:0; padding:12px; font-family:sans-serif; background-color:#121212; color:#eee;">
<canvas id="screen" width="{{ .Width }}" height="{{ .Height }}" style="display:block; cursor:pointer;"></canvas>
<p>
<button id="quit">Close simulator</button>
<span id="status">connecting...</span>
</p>
<script>
const canvas = document.getElementById("screen");
const ctx = canvas.getContext("2d");
const status = document.getElementById("status");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
ws.onopen = () => { status.textContent = "connected"; };
ws.onclose = () => { status.textContent = "simulator closed"; };
ws.onmessage = (m) => { createImageBitmap(m.data).then((img) => ctx.drawImage(img, 0, 0)); };

function send(type, e) {
	if (ws.readyState !== WebSocket.OPEN) {
		return;
	}
	const r = canvas.getBoundingClientRect();
	ws.send(JSON.stringify({
		type: type,
		x: Math.floor(e.clientX - r.left),
		y: Math.floor(e.clientY - r.top),
		button: e.button,
	}));
}

canvas.addEventListener("mousemove", (e) => send("move", e));
canvas.addEventListener("mousedown", (e) => send("down", e));
canvas.addEventListener("contextmenu", (e) => e.preventDefault());
window.addEventListener("mouseup", (e) => send("up", e));
document.getElementById("quit").onclick = () => ws.send(JSON.stringify({type: "quit"}));
</script>
</body>
</html>
`))

type pageData struct {
	Title  string
	Width  int
	Height int
}
