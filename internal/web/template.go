package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/robolearn/activity-monitor/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"stateOrUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Activity Monitor</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
#timer { font-size: 2.4em; font-weight: bold; }
.running { color: green; font-weight: bold; }
.idle { color: #888; }
.ended { color: red; }
.connected { color: green; }
.disconnected { color: red; }
.stop-button { display: inline-block; padding: 8px 16px; background: #c0392b; color: white; text-decoration: none; border-radius: 4px; }
.live-dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-left: 6px; vertical-align: middle; }
.live-dot.ok { background: green; }
.live-dot.err { background: red; }
.live-dot.pending { background: orange; }
</style>
</head>
<body>
<h1>Activity {{.Config.ActivityID}}<span id="live-dot" class="live-dot pending" title="connecting"></span></h1>

<p><span id="timer">{{.Rendered}}</span></p>

<h2>Session</h2>
<table>
<tr><th>State</th><td id="session-state" class="{{if eq (stateOrUnknown (printf "%s" .State)) "RUNNING"}}running{{else if eq (stateOrUnknown (printf "%s" .State)) "ENDED"}}ended{{else}}idle{{end}}">{{stateOrUnknown (printf "%s" .State)}}</td></tr>
<tr><th>Elapsed</th><td>{{.Elapsed}}s</td></tr>
</table>

<p><a id="stop-activity" class="stop-button" href="/stop?dest={{.Config.StopURL}}" data-stop-url="{{.Config.StopURL}}">Stop activity</a></p>

<h2>Telemetry</h2>
<table>
<tr><th>Published</th><td>{{.Telemetry.Published}}</td></tr>
<tr><th>Skipped</th><td>{{.Telemetry.Skipped}}</td></tr>
<tr><th>Failed</th><td>{{.Telemetry.Failed}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Backend</th><td>{{.Config.Backend}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Telemetry every</th><td>{{if eq .Config.TelemetryEvery 0}}disabled{{else}}{{.Config.TelemetryEvery}} ticks{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
<script>
(function() {
  var dot = document.getElementById("live-dot");
  var timerEl = document.getElementById("timer");
  var stateEl = document.getElementById("session-state");

  function setDot(cls, title) {
    dot.className = "live-dot " + cls;
    dot.title = title;
  }

  function setState(state) {
    stateEl.textContent = state;
    stateEl.className = state === "RUNNING" ? "running" : state === "ENDED" ? "ended" : "idle";
  }

  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");

  ws.onopen = function() { setDot("ok", "live"); };
  ws.onclose = function() { setDot("err", "offline"); };
  ws.onerror = function() { setDot("err", "error"); };

  ws.onmessage = function(ev) {
    try {
      var msg = JSON.parse(ev.data);
      if (msg.target === "timer") {
        timerEl.textContent = msg.value;
        setState(msg.state);
      }
    } catch (e) {}
  };
})();
</script>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
