package render

// Quotation layouts for the two built-in paint quote templates. The markup
// is self-contained A4 HTML so the PDF exporter can consume it directly.

const levisMasterpieceHTML = `<div class="document quote levis-masterpiece" style="width:210mm;font-family:Arial,sans-serif;padding:14mm;box-sizing:border-box">
<style>
.quote table{width:100%;border-collapse:collapse;margin-top:6mm}
.quote th,.quote td{border:1px solid #333;padding:4px 6px;font-size:11px}
.quote th{background:#1e3a8a;color:#fff;text-align:left}
.quote .field.selected{outline:2px solid #4f46e5;background:#eef2ff}
.quote h1{font-size:18px;color:#1e3a8a;margin:0 0 2mm}
.quote .meta{font-size:12px;margin:1mm 0}
.quote .total-row td{font-weight:bold;background:#f3f4f6}
</style>
<h1>BÁO GIÁ SƠN EPOXY LEVIS MASTERPIECE</h1>
<p class="meta">Khách hàng: {{.Field "clientName"}}</p>
<p class="meta">Mã khách hàng: {{.Field "customerCode"}}</p>
<p class="meta">Ngày báo giá: {{.Field "documentDate"}}</p>
<table>
<tr><th>Hạng mục</th><th>Mã SP</th><th>Tên sản phẩm</th><th>Quy cách</th><th>Định mức (m²)</th><th>Đơn giá</th><th>Giá/m²</th><th>Thành tiền</th><th>Bảo hành</th></tr>
{{- range $i := .Seq "lineItems"}}
<tr>
<td>{{$.Field (printf "lineItems.%d.category" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.sku" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.name" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.packSize" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.coverage" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.price" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.pricePerSqM" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.totalPrice" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.warranty" $i)}}</td>
</tr>
{{- end}}
<tr class="total-row"><td colspan="7">TỔNG CỘNG (VNĐ/m²)</td><td colspan="2">{{.Field "total"}}</td></tr>
</table>
</div>
`

const lavissonAntiHeatHTML = `<div class="document quote lavisson-anti-heat" style="width:210mm;font-family:Arial,sans-serif;padding:14mm;box-sizing:border-box">
<style>
.quote table{width:100%;border-collapse:collapse;margin-top:6mm}
.quote th,.quote td{border:1px solid #333;padding:4px 6px;font-size:11px}
.quote th{background:#b91c1c;color:#fff;text-align:left}
.quote .field.selected{outline:2px solid #4f46e5;background:#eef2ff}
.quote h1{font-size:18px;color:#b91c1c;margin:0 0 2mm}
.quote .meta{font-size:12px;margin:1mm 0}
.quote .total-row td{font-weight:bold;background:#f3f4f6}
</style>
<h1>BÁO GIÁ SƠN CHỐNG NÓNG LAVISSON</h1>
<p class="meta">Khách hàng: {{.Field "clientName"}}</p>
<p class="meta">Mã khách hàng: {{.Field "customerCode"}}</p>
<p class="meta">Ngày báo giá: {{.Field "documentDate"}}</p>
<table>
<tr><th>Hạng mục</th><th>Mã SP</th><th>Tên sản phẩm</th><th>Quy cách</th><th>Định mức (m²)</th><th>Đơn giá</th><th>Giá/m²</th><th>Thành tiền</th></tr>
{{- range $i := .Seq "lineItems"}}
<tr>
<td>{{$.Field (printf "lineItems.%d.category" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.sku" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.name" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.packSize" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.coverage" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.price" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.pricePerSqM" $i)}}</td>
<td>{{$.Field (printf "lineItems.%d.totalPrice" $i)}}</td>
</tr>
{{- end}}
<tr><td colspan="7">Nhân công thi công (VNĐ/m²)</td><td>{{.Field "laborCost"}}</td></tr>
<tr class="total-row"><td colspan="7">TỔNG CỘNG (VNĐ/m²)</td><td>{{.Field "total"}}</td></tr>
</table>
</div>
`
