package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/spendmap/pkg/chart"
	"github.com/matzehuels/spendmap/pkg/fonts"
	"github.com/matzehuels/spendmap/pkg/render/styles"
)

// SelectEvent is the DOM event dispatched on the <svg> element when a cell
// is clicked. Its detail holds {id, selected}.
const SelectEvent = "spendmap:select"

const cellInteractionCSS = `
    #%[1]s .cell { transition: opacity 0.15s ease, stroke-width 0.15s ease; cursor: pointer; }
    #%[1]s.hovering .cell { opacity: 0.55; }
    #%[1]s.hovering .cell.highlight { opacity: 1; stroke-width: 2.5; }
    #%[1]s .cell.selected { stroke: #111; stroke-width: 3; }
    #%[1]s .cell-text { pointer-events: none; font-family: %[2]s; }`

const cellInteractionJS = `
    (function() {
      const root = document.getElementById('%s');
      const cells = root.querySelectorAll('.cell');
      function related(el, id) {
        return el.dataset.id === id || el.dataset.parent === id;
      }
      cells.forEach(el => {
        el.addEventListener('mouseenter', () => {
          root.classList.add('hovering');
          cells.forEach(c => c.classList.toggle('highlight', related(c, el.dataset.id)));
        });
        el.addEventListener('mouseleave', () => {
          root.classList.remove('hovering');
          cells.forEach(c => c.classList.remove('highlight'));
        });
        el.addEventListener('click', ev => {
          ev.stopPropagation();
          const on = el.classList.toggle('selected');
          root.dispatchEvent(new CustomEvent('%s', {detail: {id: el.dataset.id, selected: on}}));
        });
      });
    })();`

// RenderSVG renders the chart as a standalone interactive SVG document.
//
// Every non-empty cell becomes a <rect> carrying data-id (and data-parent
// for subcategories) and a <title> tooltip. Text is drawn per the rules
// table; zero-area cells are skipped. Hovering a cell highlights it with
// its parent or children and clicking toggles a "selected" class.
func RenderSVG(ch *chart.Chart, opts ...Option) []byte {
	r := newRenderer(opts...)
	blocks := buildBlocks(ch, r)
	c := ch.Canvas

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" class="spendmap" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.docID, c.X, c.Y, c.W, c.H, c.W, c.H)
	fmt.Fprintf(&buf, `  <rect class="background" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n",
		c.X, c.Y, c.W, c.H)

	r.style.RenderDefs(&buf)
	renderContent(&buf, r.style, blocks)
	renderCellInteraction(&buf, r.docID)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderContent(buf *bytes.Buffer, style styles.Style, blocks []styles.Block) {
	for _, b := range blocks {
		style.RenderBlock(buf, b)
	}
	for _, b := range blocks {
		style.RenderText(buf, b)
	}
}

func renderCellInteraction(buf *bytes.Buffer, docID string) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", fmt.Sprintf(cellInteractionCSS, docID, fonts.FontFamily))
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", fmt.Sprintf(cellInteractionJS, docID, SelectEvent))
}
