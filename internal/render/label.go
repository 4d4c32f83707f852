package render

// Product label layout for the K-HOME NEW CITY template.

const kHomeLabelHTML = `<div class="document label k-home" style="width:210mm;font-family:Arial,sans-serif;padding:14mm;box-sizing:border-box">
<style>
.label .field.selected{outline:2px solid #4f46e5;background:#eef2ff}
.label h1{font-size:22px;text-align:center;color:#047857;margin:0 0 6mm}
.label .product{border:2px solid #047857;border-radius:4px;padding:6mm;margin-bottom:4mm;font-size:14px;white-space:pre-line;text-align:center}
.label .color{font-size:16px;font-weight:bold;text-align:center;margin-top:6mm}
</style>
<h1>{{.Field "projectName"}}</h1>
{{- range $i := .Seq "productInfo"}}
<div class="product">{{$.Field (printf "productInfo.%d" $i)}}</div>
{{- end}}
<p class="color">Mã màu: {{.Field "colorCode"}}</p>
</div>
`
