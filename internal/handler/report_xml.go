package handler

import (
	"net/http"
	"strconv"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/beevik/etree"
)

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCount(n int64) string {
	return strconv.FormatInt(n, 10)
}

// buildReportXML renders report as a <laporan> document
func buildReportXML(report *models.Report) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("laporan")
	period := root.CreateElement("periode")
	period.CreateAttr("start", report.DateRange.Start)
	period.CreateAttr("end", report.DateRange.End)

	revenue := root.CreateElement("pendapatan")
	revenue.CreateElement("total").SetText(formatAmount(report.Revenue.Total))
	revenue.CreateElement("transaksi").SetText(formatCount(report.Revenue.TransactionCount))
	revenue.CreateElement("rataRata").SetText(formatAmount(report.Revenue.Average))
	monthly := revenue.CreateElement("bulanan")
	for _, m := range report.Revenue.Monthly {
		el := monthly.CreateElement("bulan")
		el.CreateAttr("nama", m.Month)
		el.CreateAttr("jumlah", formatCount(m.Count))
		el.SetText(formatAmount(m.Revenue))
	}

	occ := root.CreateElement("okupansi")
	occ.CreateAttr("rate", formatAmount(report.Occupancy.Rate))
	occ.CreateElement("total").SetText(formatCount(report.Occupancy.Total))
	occ.CreateElement("terisi").SetText(formatCount(report.Occupancy.Occupied))
	occ.CreateElement("tersedia").SetText(formatCount(report.Occupancy.Available))
	occ.CreateElement("maintenance").SetText(formatCount(report.Occupancy.Maintenance))

	payments := root.CreateElement("pembayaran")
	for _, s := range report.Payments.ByStatus {
		el := payments.CreateElement("status")
		el.CreateAttr("kode", s.Status)
		el.CreateAttr("jumlah", formatCount(s.Count))
		el.SetText(formatAmount(s.Total))
	}
	outstanding := payments.CreateElement("tunggakan")
	outstanding.CreateAttr("jumlah", formatCount(report.Payments.Outstanding.Count))
	outstanding.SetText(formatAmount(report.Payments.Outstanding.Amount))

	complaints := root.CreateElement("keluhan")
	complaints.CreateAttr("total", formatCount(report.Complaints.Total))
	for _, s := range report.Complaints.ByStatus {
		el := complaints.CreateElement("status")
		el.CreateAttr("kode", s.Status)
		el.SetText(formatCount(s.Count))
	}
	for _, c := range report.Complaints.ByCategory {
		el := complaints.CreateElement("kategori")
		el.CreateAttr("nama", c.Category)
		el.SetText(formatCount(c.Count))
	}

	tenants := root.CreateElement("penyewa")
	tenants.CreateAttr("total", formatCount(report.Tenants.Total))
	tenants.CreateElement("aktif").SetText(formatCount(report.Tenants.Active))
	tenants.CreateElement("keluar").SetText(formatCount(report.Tenants.Left))
	tenants.CreateElement("suspend").SetText(formatCount(report.Tenants.Suspended))

	rooms := root.CreateElement("kamar")
	for _, t := range report.Rooms.ByType {
		el := rooms.CreateElement("tipe")
		el.CreateAttr("nama", t.Type)
		el.CreateAttr("jumlah", formatCount(t.Count))
		el.CreateAttr("hargaRataRata", formatAmount(t.AveragePrice))
	}

	trends := root.CreateElement("tren7Hari")
	trends.CreateElement("pembayaran").SetText(formatCount(report.Trends.Last7Days.Payments))
	trends.CreateElement("keluhan").SetText(formatCount(report.Trends.Last7Days.Complaints))
	trends.CreateElement("penyewaBaru").SetText(formatCount(report.Trends.Last7Days.NewTenants))

	doc.Indent(2)
	return doc
}

func writeReportXML(w http.ResponseWriter, report *models.Report) error {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buildReportXML(report).WriteTo(w)
	return err
}
