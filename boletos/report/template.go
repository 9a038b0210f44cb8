package report

const reportTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Relatório de Inadimplência</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; color: #333; }
.container { max-width: 1200px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }
h1 { color: #1a237e; border-bottom: 3px solid #1a237e; padding-bottom: 10px; }
h2 { color: #283593; margin-top: 36px; }
.meta { color: #757575; font-size: 0.9em; }
.cards { display: flex; flex-wrap: wrap; gap: 16px; margin: 20px 0; }
.card { flex: 1 1 200px; background: #e8eaf6; border-radius: 6px; padding: 16px; }
.card .label { font-size: 0.85em; color: #5c6bc0; text-transform: uppercase; }
.card .value { font-size: 1.5em; font-weight: bold; color: #1a237e; margin-top: 4px; }
table { border-collapse: collapse; width: 100%; margin: 16px 0; font-size: 0.92em; }
th { background-color: #1a237e; color: white; padding: 8px 10px; text-align: left; }
td { border-bottom: 1px solid #e0e0e0; padding: 7px 10px; }
tr:nth-child(even) { background-color: #fafafa; }
.warn { color: #c62828; }
.ok { color: #2e7d32; }
img.chart { max-width: 100%; margin: 12px 0; border: 1px solid #e0e0e0; border-radius: 4px; }
</style>
</head>
<body>
<div class="container">
<h1>Relatório de Inadimplência</h1>
<p class="meta">Gerado em {{.GeneratedAt}} &mdash; execução {{.Result.RunID}}</p>

<h2>Resumo Executivo</h2>
<div class="cards">
  <div class="card"><div class="label">Devedores únicos</div><div class="value">{{.Result.Overview.UniqueDebtors}}</div></div>
  <div class="card"><div class="label">Boletos em aberto</div><div class="value">{{.Result.Overview.OpenBills}}</div></div>
  <div class="card"><div class="label">Dívida total em aberto</div><div class="value">{{currency .Result.Overview.TotalOpenDebt}}</div></div>
  <div class="card"><div class="label">Ticket médio por devedor</div><div class="value">{{fcurrency .Result.Overview.MeanPerDebtor}}</div></div>
</div>
{{with .Result.Overview.LargestDebtor}}
<p>Maior dívida individual: <strong>{{currency .Amount}}</strong> ({{.PayerName}}, pena {{.WaterPenaltyID}})</p>
{{end}}
{{with .Result.Overview.LargestBoleto}}
<p>Maior boleto em aberto: <strong>{{currency .Amount}}</strong> ({{.PayerName}}, {{.Bank}}, vencimento {{date .DueDate}})</p>
{{end}}

{{if .Charts}}
<h2>Gráficos</h2>
{{range .Charts}}<img class="chart" src="{{.}}" alt="{{.}}">{{end}}
{{end}}

<h2>Inadimplência por Banco</h2>
<table>
<tr><th>Banco</th><th>Boletos</th><th>Devedores</th><th>Soma</th><th>Média</th><th>Mediana</th><th>P90</th></tr>
{{range .Result.ByBank}}
<tr><td>{{.Bank}}</td><td>{{.BillCount}}</td><td>{{.DebtorCount}}</td><td>{{currency .Sum}}</td><td>{{fcurrency .Mean}}</td><td>{{fcurrency .Median}}</td><td>{{fcurrency .P90}}</td></tr>
{{end}}
</table>

<h2>Evolução Mensal</h2>
<table>
<tr><th>Mês</th><th>Boletos</th><th>Devedores</th><th>Soma</th><th>Média</th></tr>
{{range .Result.ByMonth}}
<tr><td>{{.Month}}</td><td>{{.BillCount}}</td><td>{{.DebtorCount}}</td><td>{{currency .Sum}}</td><td>{{fcurrency .Mean}}</td></tr>
{{end}}
</table>

<h2>Top Devedores por Dívida Total</h2>
<table>
<tr><th>#</th><th>Pena</th><th>Nome</th><th>Dívida total</th><th>Boletos</th><th>Status mais comum</th></tr>
{{range .Result.RankingByDebt}}
<tr><td>{{.Rank}}</td><td>{{.WaterPenaltyID}}</td><td>{{.PayerName}}</td><td>{{currency .TotalDebt}}</td><td>{{.BillCount}}</td><td>{{.CommonStatus}}</td></tr>
{{end}}
</table>

<h2>Top Reincidentes</h2>
<table>
<tr><th>Pena</th><th>Nome</th><th>Meses</th><th>Lista de meses</th><th>Boletos</th><th>Soma</th></tr>
{{range .Result.TopRecurrent}}
<tr><td>{{.WaterPenaltyID}}</td><td>{{.PayerName}}</td><td>{{.MonthCount}}</td><td>{{joinList .Months}}</td><td>{{.BillCount}}</td><td>{{currency .TotalOpen}}</td></tr>
{{end}}
</table>

<h2>Reincidência por Mês</h2>
<table>
<tr><th>Mês</th><th>Devedores</th><th>Novos</th><th>Reincidentes</th><th>% reincidentes</th></tr>
{{range .Result.RecurrenceByMonth}}
<tr><td>{{.Month}}</td><td>{{.TotalDebtors}}</td><td>{{.NewDebtors}}</td><td>{{.RepeatDebtors}}</td><td>{{percent .PctRepeat}}</td></tr>
{{end}}
</table>

<h2>Maiores Pioras (mês a mês)</h2>
<table>
<tr><th>Pena</th><th>Nome</th><th>De</th><th>Para</th><th>Anterior</th><th>Atual</th><th>Delta</th></tr>
{{range .Result.TopWorsened}}
<tr><td>{{.WaterPenaltyID}}</td><td>{{.PayerName}}</td><td>{{.PrevMonth}}</td><td>{{.Month}}</td><td>{{currency .PrevAmount}}</td><td>{{currency .Amount}}</td><td class="warn">{{currency .Delta}}</td></tr>
{{end}}
</table>

<h2>Maiores Melhoras (mês a mês)</h2>
<table>
<tr><th>Pena</th><th>Nome</th><th>De</th><th>Para</th><th>Anterior</th><th>Atual</th><th>Delta</th></tr>
{{range .Result.TopImproved}}
<tr><td>{{.WaterPenaltyID}}</td><td>{{.PayerName}}</td><td>{{.PrevMonth}}</td><td>{{.Month}}</td><td>{{currency .PrevAmount}}</td><td>{{currency .Amount}}</td><td class="ok">{{currency .Delta}}</td></tr>
{{end}}
</table>

<h2>Qualidade dos Dados</h2>
<table>
<tr><th>Métrica</th><th>Valor</th></tr>
<tr><td>Total de linhas</td><td>{{.Result.Quality.TotalRows}}</td></tr>
<tr><td>Linhas inválidas</td><td>{{.Result.Quality.InvalidRows}}</td></tr>
<tr><td>Linhas com valor inválido</td><td>{{.Result.Quality.InvalidAmountRows}} ({{percent .Result.Quality.PctInvalidAmount}})</td></tr>
<tr><td>Linhas com data inválida</td><td>{{.Result.Quality.InvalidDateRows}} ({{percent .Result.Quality.PctInvalidDate}})</td></tr>
<tr><td>Linhas com status desconhecido</td><td>{{.Result.Quality.UnknownStatusRows}}</td></tr>
<tr><td>Grupos duplicados (banco, nosso número)</td><td>{{.Result.Quality.GroupsByOurNumber}}</td></tr>
<tr><td>Grupos duplicados (banco, seu número, vencimento, valor)</td><td>{{.Result.Quality.GroupsByYourNumber}}</td></tr>
<tr><td>Apontamentos registrados</td><td>{{.Result.Quality.FindingCount}}</td></tr>
</table>

{{if .Result.UnknownStatuses}}
<h2>Status Não Classificados</h2>
<p class="warn">Revise as regras de classificação para os status abaixo:</p>
<ul>
{{range .Result.UnknownStatuses}}<li>{{.}}</li>{{end}}
</ul>
{{end}}

</div>
</body>
</html>
`
