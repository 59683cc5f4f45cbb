package web

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<title>deepgen monitor</title>
<style>
body { font-family: sans-serif; margin: 20px; }
pre { background: #f4f4f4; padding: 10px; white-space: pre-wrap; }
.charts { display: flex; gap: 20px; }
</style>
</head>
<body>
<h2>{{.Heading}}</h2>
<div class="charts">
<div>{{.LossPlot 5 3}}</div>
<div>{{.FreqPlot 5 3}}</div>
</div>
<form method="POST" action="/generate">
<p><label>seed:</label><br>
<textarea name="seed" rows="2" cols="80">{{.Seed}}</textarea></p>
<p><label>chars:</label> <input type="number" name="chars" value="{{.GenChars}}">
<input type="submit" value="generate"></p>
</form>
<pre id="output"></pre>
<script>
var ws = new WebSocket("ws://" + window.location.host + "/ws");
ws.onmessage = function(ev) {
	document.getElementById("output").textContent += ev.data + "\n";
};
</script>
</body>
</html>
`
