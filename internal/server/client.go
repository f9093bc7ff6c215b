package server

import "strings"

// clientScript connects a served page to /ws: it swaps in streamed frames,
// mirrors the tooltip and reports pointer events over chart containers and
// static tooltip targets.
const clientScript = `<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  function send(m) { if (ws.readyState === 1) ws.send(JSON.stringify(m)); }
  function viewport() {
    send({type: "viewport", viewport: {width: innerWidth, height: innerHeight, scrollX: scrollX, scrollY: scrollY}});
  }
  ws.onopen = function () {
    viewport();
    document.querySelectorAll("[data-widget-id] .chart-container").forEach(function (el) {
      var id = el.closest("[data-widget-id]").getAttribute("data-widget-id");
      el.addEventListener("mousemove", function (e) {
        var r = el.getBoundingClientRect();
        send({type: "move", widget: id, x: e.clientX - r.left, y: e.clientY - r.top, pageX: e.clientX, pageY: e.clientY});
      });
      el.addEventListener("mouseleave", function () { send({type: "leave", widget: id}); });
    });
    document.querySelectorAll("[data-tooltip-index]").forEach(function (el) {
      var i = Number(el.getAttribute("data-tooltip-index"));
      el.addEventListener("mouseenter", function (e) { send({type: "enter-static", index: i, pageX: e.clientX, pageY: e.clientY}); });
      el.addEventListener("mousemove", function (e) { send({type: "move-static", index: i, pageX: e.clientX, pageY: e.clientY}); });
      el.addEventListener("mouseleave", function () { send({type: "leave-static", index: i}); });
    });
  };
  addEventListener("resize", viewport);
  addEventListener("scroll", viewport);
  ws.onmessage = function (ev) {
    var m = JSON.parse(ev.data);
    if (m.type === "frame") {
      var box = document.querySelector('[data-widget-id="' + m.widget + '"]');
      if (!box) return;
      var c = box.querySelector(".chart-container");
      if (c && m.markup) {
        var svg = c.querySelector("svg");
        if (svg) svg.outerHTML = m.markup; else c.insertAdjacentHTML("afterbegin", m.markup);
      } else if (!c && m.overlay) {
        var content = box.querySelector(".box-content");
        if (content) content.textContent = m.overlay.text || "";
      }
    } else if (m.type === "tooltip") {
      var t = document.getElementById("chartTooltip");
      if (!t) return;
      t.textContent = m.tooltip.text || "";
      t.style.display = m.tooltip.visible ? "block" : "none";
      t.style.left = (m.tooltip.left || 0) + "px";
      t.style.top = (m.tooltip.top || 0) + "px";
    }
  };
})();
</script>
`

// withClient injects the live client before </body>, or appends it.
func withClient(html string) string {
	i := strings.LastIndex(html, "</body>")
	if i < 0 {
		return html + clientScript
	}
	return html[:i] + clientScript + html[i:]
}
