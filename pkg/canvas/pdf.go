package canvas

import (
	"errors"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/gridpress/pkg/fonts"
)

// fixedDate is stamped as creation and modification date so identical
// input renders to identical bytes.
var fixedDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var errNoPage = errors.New("draw call before the first page")

// PDF is a [Document] backed by fpdf.
type PDF struct {
	doc    *fpdf.Fpdf
	family fonts.Family
	tr     func(string) string
	pageH  float64

	curStyle fonts.Style
	curSize  float64
}

// NewPDF returns an empty PDF document set in family.
func NewPDF(family fonts.Family, info Info) *PDF {
	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: 612, Ht: 792},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetCompression(true)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(fixedDate)
	doc.SetModificationDate(fixedDate)

	if info.Title != "" {
		doc.SetTitle(info.Title, true)
	}
	if info.Author != "" {
		doc.SetAuthor(info.Author, true)
	}
	if info.Subject != "" {
		doc.SetSubject(info.Subject, true)
	}
	if info.Creator != "" {
		doc.SetCreator(info.Creator, true)
	}

	return &PDF{
		doc:    doc,
		family: family,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
	}
}

// NewPage implements [Surface].
func (p *PDF) NewPage(width, height float64) {
	p.doc.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	p.pageH = height
	p.curSize = 0
}

// PageCount implements [Surface].
func (p *PDF) PageCount() int {
	return p.doc.PageCount()
}

// DrawText implements [Surface].
func (p *PDF) DrawText(text string, x, y float64, style fonts.Style, size float64, color Color) {
	if !p.ready() {
		return
	}
	p.setFont(style, size)
	p.doc.SetTextColor(int(color.R), int(color.G), int(color.B))
	p.doc.Text(x, p.pageH-y, p.tr(text))
}

// DrawRect implements [Surface].
func (p *PDF) DrawRect(r Rect) {
	if !p.ready() {
		return
	}
	var op string
	if r.Fill != nil {
		p.doc.SetFillColor(int(r.Fill.R), int(r.Fill.G), int(r.Fill.B))
		op += "F"
	}
	if r.Stroke != nil {
		p.doc.SetDrawColor(int(r.Stroke.R), int(r.Stroke.G), int(r.Stroke.B))
		lw := r.LineWidth
		if lw <= 0 {
			lw = 1
		}
		p.doc.SetLineWidth(lw)
		op += "D"
	}
	if op == "" {
		return
	}
	p.doc.Rect(r.X, p.pageH-(r.Y+r.H), r.W, r.H, op)
}

// MeasureText implements [Measurer].
func (p *PDF) MeasureText(text string, style fonts.Style, size float64) float64 {
	p.setFont(style, size)
	return p.doc.GetStringWidth(p.tr(text))
}

// Serialize writes the finished document. It reports any error fpdf
// accumulated while drawing.
func (p *PDF) Serialize(w io.Writer) error {
	if err := p.doc.Error(); err != nil {
		return err
	}
	return p.doc.Output(w)
}

func (p *PDF) ready() bool {
	if p.doc.PageCount() == 0 {
		p.doc.SetError(errNoPage)
		return false
	}
	return p.doc.Ok()
}

func (p *PDF) setFont(style fonts.Style, size float64) {
	if p.curSize == size && p.curStyle == style {
		return
	}
	p.doc.SetFont(p.family.PDFName(), style.PDFStyle(), size)
	p.curStyle, p.curSize = style, size
}
