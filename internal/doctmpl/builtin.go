package doctmpl

// Built-in templates ported from the Lavis sales document set: two epoxy
// paint quotations and one product label.

const (
	LevisMasterpieceID = "levis-masterpiece-sc5"
	LavissonAntiHeatID = "lavisson-anti-heat-sontien"
	KHomeLabelID       = "k-home-label"
)

func builtinTemplates() []Template {
	return []Template{
		{
			ID:   LevisMasterpieceID,
			Name: "Báo Giá Levis Masterpiece (Khách hàng SC5)",
			InitialData: Payload{
				"clientName":   "CÔNG TY CỔ PHẦN XÂY DỰNG SỐ 5",
				"customerCode": "SC5",
				"documentDate": "05/07/2025",
				"total":        float64(102734),
				"lineItems": []interface{}{
					map[string]interface{}{
						"category":    "Sơn lót",
						"sku":         "FE2WH - WHITE",
						"name":        "Sơn lót Epoxy 2K hệ lăn – Gốc nước (màu trắng)",
						"packSize":    "20KG",
						"coverage":    float64(128),
						"price":       float64(4050000),
						"pricePerSqM": float64(31641),
						"totalPrice":  float64(31641),
						"warranty":    "",
					},
					map[string]interface{}{
						"category":    "Sơn phủ",
						"sku":         "FE1WA - GREY",
						"name":        "Sơn phủ Epoxy 2K hệ lăn - Gốc nước - Tiêu Chuẩn (màu xám)",
						"packSize":    "20KG",
						"coverage":    float64(128),
						"price":       float64(4550000),
						"pricePerSqM": float64(35547),
						"totalPrice":  float64(71094),
						"warranty":    "18 Tháng",
					},
				},
			},
		},
		{
			ID:   LavissonAntiHeatID,
			Name: "Báo Giá Sơn Chống Nóng Lavisson (Sơn Tiên)",
			InitialData: Payload{
				"clientName":   "CÔNG TY CỔ PHẦN THÀNH PHỐ DU LỊCH SINH THÁI SƠN TIÊN",
				"customerCode": "SONTIEN",
				"documentDate": "15.08.2025",
				"total":        float64(64136),
				"laborCost":    float64(15000),
				"lineItems": []interface{}{
					map[string]interface{}{
						"category":    "Sơn lót",
						"sku":         "D803P. TRANG",
						"name":        "Lavisson Metal Coat - Anticorrosive Primer",
						"packSize":    "16L",
						"coverage":    "220",
						"price":       float64(1790000),
						"pricePerSqM": float64(8136),
						"totalPrice":  float64(8136),
						"warranty":    "",
					},
					map[string]interface{}{
						"category":    "Sơn phủ",
						"sku":         "D601",
						"name":        "Lavisson Industrial Cooling Shield (Trắng)",
						"packSize":    "17L",
						"coverage":    "50",
						"price":       float64(2050000),
						"pricePerSqM": float64(41000),
						"totalPrice":  float64(41000),
						"warranty":    "",
					},
				},
			},
		},
		{
			ID:   KHomeLabelID,
			Name: "Nhãn sản phẩm K-HOME NEW CITY",
			InitialData: Payload{
				"projectName": "DỰ ÁN: K-HOME NEW CITY",
				"productInfo": []interface{}{
					"BỘT TRÉT NGOẠI THẤT:\nLEVIS MASTERPIECE PUTTY EXT - 2 LỚP",
					"SƠN LÓT NGOẠI THẤT:\nLEVIS MASTERPIECE P600 - 1 LỚP",
					"SƠN PHỦ NGOẠI THẤT:\nLEVIS MASTERPIECE E100 - 2 LỚP",
				},
				"colorCode":    "D30 - D",
				"clientName":   "K-HOME",
				"customerCode": "K-HOME",
				"documentDate": "",
				"total":        float64(0),
				"lineItems":    []interface{}{},
			},
		},
	}
}
