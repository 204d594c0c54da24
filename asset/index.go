package asset

// IndexHTML is the browser client served at the root path in serve mode
// It mirrors /ws snapshots onto a CSS grid and sends tap_cell and reset messages
const IndexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>flipcard</title>
<style>
  body { background: #101820; color: #e0fbfc; font-family: monospace; text-align: center; }
  #grid { display: inline-grid; gap: 8px; margin-top: 24px; }
  .cell { width: 96px; height: 100px; border-radius: 6px; font-size: 48px; line-height: 100px;
          background: #293241; cursor: pointer; transition: transform 0.1s, opacity 0.1s; }
  .back { background: #1b263b; color: #3d5a80; }
  .hidden { visibility: hidden; }
  #banner { height: 2em; font-size: 1.5em; }
</style>
</head>
<body>
<div id="banner"></div>
<div id="grid"></div>
<p><button id="reset">restart</button> <span id="status"></span></p>
<script>
const faces = ["♠", "♥", "♦", "♣", "★", "☾", "☀", "♪"];
const grid = document.getElementById("grid");
const banner = document.getElementById("banner");
const status = document.getElementById("status");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");

ws.onmessage = (msg) => {
  const data = JSON.parse(msg.data);
  if (data.type === "win") {
    banner.textContent = "cleared!";
    setTimeout(() => { banner.textContent = ""; }, 2000);
    return;
  }
  if (data.type !== "state") return;
  const s = data.state;
  grid.style.gridTemplateColumns = "repeat(" + s.cols + ", 96px)";
  while (grid.children.length > s.cells.length) grid.lastChild.remove();
  while (grid.children.length < s.cells.length) {
    const el = document.createElement("div");
    const index = grid.children.length;
    el.onclick = () => ws.send(JSON.stringify({ type: "tap_cell", payload: { index } }));
    grid.appendChild(el);
  }
  s.cells.forEach((c, i) => {
    const el = grid.children[i];
    const face = c.region >= 0;
    el.className = "cell" + (face ? "" : " back") + (c.visible ? "" : " hidden");
    el.textContent = face ? faces[c.region % faces.length] : "▒";
    el.style.transform = "scale(" + c.scale_x + "," + c.scale_y + ")";
  });
  status.textContent = "remaining " + s.remaining + "  wins " + (s.metrics["game.wins"] || 0);
};

document.getElementById("reset").onclick = () => ws.send(JSON.stringify({ type: "reset" }));
</script>
</body>
</html>
`
