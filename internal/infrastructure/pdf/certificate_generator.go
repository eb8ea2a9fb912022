// Package pdf renderiza el certificado de conformidad de un extintor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Certificado + N° y fecha de emisión                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NEGOCIO: razón social, responsable, dirección, teléfono    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UNIDAD: tipo | capacidad | cantidad | estado | vencimiento │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÚLTIMA REVISIÓN: fecha + tareas realizadas                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de identidad + leyenda                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/sawaid25/aixosfire-api/internal/application/certificate"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCertificateGenerator implementa certificate.CertificatePDFGenerator
// usando Maroto v2.
type MarotoCertificateGenerator struct{}

// NewMarotoCertificateGenerator construye el generador.
func NewMarotoCertificateGenerator() *MarotoCertificateGenerator { return &MarotoCertificateGenerator{} }

var _ certificate.CertificatePDFGenerator = (*MarotoCertificateGenerator)(nil)

// GenerateCertificatePDF genera el PDF y devuelve sus bytes.
func (g *MarotoCertificateGenerator) GenerateCertificatePDF(_ context.Context, data *certificate.CertificateData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Certificado de Conformidad", true).
		WithAuthor("AixosFire", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(businessRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de la unidad
	m.AddRows(unitHeaderRow())
	m.AddRows(unitDetailRow(data))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(inspectionRow(data))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(data) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del certificado (izq) y número + fecha de emisión (der).
func headerRow(data *certificate.CertificateData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("AixosFire", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Servicios de seguridad contra incendios", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CERTIFICADO DE CONFORMIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.CertificateNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+data.IssuedAt, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// businessRow: datos del negocio titular de la unidad.
func businessRow(data *certificate.CertificateData) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("NEGOCIO TITULAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(data.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Responsable: %s   |   Dirección: %s   |   Tel: %s",
				nonEmpty(data.OwnerName, "—"),
				nonEmpty(data.Address, "—"),
				nonEmpty(data.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// unitHeaderRow: cabecera de la tabla de la unidad certificada.
func unitHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 4, align.Left),
		h("Capacidad", 2, align.Center),
		h("Cant.", 1, align.Center),
		h("Estado", 2, align.Center),
		h("Vence", 3, align.Right),
	)
}

// unitDetailRow: la fila de la unidad certificada.
func unitDetailRow(data *certificate.CertificateData) core.Row {
	return row.New(7).Add(
		col.New(4).Add(text.New(
			data.ExtinguisherType,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			data.Capacity,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", data.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(2).Add(text.New(
			data.Status,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			nonEmpty(data.ExpiryDate, "—"),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// inspectionRow: última revisión registrada sobre la unidad.
func inspectionRow(data *certificate.CertificateData) core.Row {
	detail := "Sin revisiones registradas"
	if data.LastVisitDate != "" {
		detail = fmt.Sprintf("Fecha: %s   |   Tareas: %s   |   Condición: %s",
			data.LastVisitDate,
			nonEmpty(data.TaskTypes, "—"),
			nonEmpty(data.Condition, "—"),
		)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ÚLTIMA REVISIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(detail, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// footerRows: QR de identidad del titular + leyenda.
func footerRows(data *certificate.CertificateData) []core.Row {
	var rows []core.Row

	if data.QRData != "" {
		rows = append(rows, row.New(50).Add(
			col.New(4).Add(code.NewQr(data.QRData, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para identificar\nal negocio titular de esta unidad.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("CERTIFICADO DE CONFORMIDAD\nDE EQUIPO EXTINTOR", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 22,
					Left: 3, Color: colorPrimary,
				}),
			),
		))
	} else {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("CERTIFICADO DE CONFORMIDAD DE EQUIPO EXTINTOR", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
				Color: colorPrimary, Top: 2,
			}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Este certificado acredita el estado de la unidad al cierre de la última "+
				"visita registrada. Su vigencia está sujeta a la fecha de vencimiento "+
				"indicada y a las revisiones periódicas del equipo.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
