package survey

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/schulkompass/surveykit/internal/scale"
)

type formOption struct {
	Value int
	Label string
}

type formItem struct {
	Index   int
	Total   int
	ID      string
	Text    string
	Options []formOption
}

type formData struct {
	ScaleCode        string
	Title            string
	Fragestamm       string
	CollectorURL     string
	EstimatedMinutes int
	Items            []formItem
}

// RenderForm produces the self-contained mobile survey form. Labels come
// from the scale's response definition; English PISA labels are translated
// to German where a translation exists.
func RenderForm(sc scale.Scale, opts Options) ([]byte, error) {
	data := formData{
		ScaleCode:        sc.Code,
		Title:            sc.TitleDE,
		Fragestamm:       sc.Fragestamm,
		CollectorURL:     opts.CollectorURL,
		EstimatedMinutes: EstimateDuration(len(sc.Items)),
	}
	for i, it := range sc.Items {
		fi := formItem{Index: i + 1, Total: len(sc.Items), ID: it.ID, Text: it.TextDE}
		for v := sc.Response.Min; v <= sc.Response.Max; v++ {
			label := sc.Response.Labels[strconv.Itoa(v)]
			if label == "" {
				label = "Option " + strconv.Itoa(v)
			}
			fi.Options = append(fi.Options, formOption{Value: v, Label: scale.TranslateLabel(label)})
		}
		data.Items = append(data.Items, fi)
	}

	var buf bytes.Buffer
	if err := formTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var formTmpl = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - PISA Befragung</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
  background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
  min-height: 100vh; padding: 20px; line-height: 1.6;
}
.container {
  max-width: 800px; margin: 0 auto; background: white; border-radius: 12px;
  box-shadow: 0 10px 40px rgba(0,0,0,0.2); padding: 30px;
}
h1 { color: #333; margin-bottom: 10px; font-size: 24px; }
.subtitle { color: #666; margin-bottom: 30px; font-size: 14px; }
.intro-box {
  background: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 30px;
  border-left: 4px solid #667eea;
}
.fragestamm {
  font-style: italic; color: #555; margin-bottom: 20px; padding: 15px;
  background: #e8f4f8; border-radius: 6px;
}
.form-group { margin-bottom: 40px; padding-bottom: 30px; border-bottom: 2px solid #e9ecef; }
.form-group:last-of-type { border-bottom: none; }
.question-number {
  display: inline-block; background: #667eea; color: white; padding: 4px 12px;
  border-radius: 20px; font-size: 12px; font-weight: bold; margin-bottom: 10px;
}
.question-text { font-size: 16px; color: #333; margin-bottom: 15px; font-weight: 500; }
.radio-group { display: flex; flex-direction: column; gap: 10px; }
.radio-option {
  display: flex; align-items: center; padding: 12px; border: 2px solid #e9ecef;
  border-radius: 8px; cursor: pointer; transition: all 0.2s;
}
.radio-option:hover { border-color: #667eea; background: #f8f9ff; }
.radio-option input[type="radio"] { margin-right: 12px; width: 20px; height: 20px; cursor: pointer; }
.radio-option label { cursor: pointer; flex: 1; font-size: 15px; }
.student-name {
  width: 100%; padding: 12px; font-size: 16px; border: 2px solid #e9ecef;
  border-radius: 8px; margin-bottom: 20px;
}
.student-name:focus { outline: none; border-color: #667eea; }
.submit-btn {
  width: 100%; padding: 15px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
  color: white; border: none; border-radius: 8px; font-size: 18px; font-weight: bold;
  cursor: pointer; transition: transform 0.2s;
}
.submit-btn:hover { transform: translateY(-2px); box-shadow: 0 5px 15px rgba(102,126,234,0.4); }
.submit-btn:disabled { opacity: 0.5; cursor: not-allowed; }
.progress-bar {
  width: 100%; height: 6px; background: #e9ecef; border-radius: 3px;
  margin-bottom: 20px; overflow: hidden;
}
.progress-fill {
  height: 100%; background: linear-gradient(90deg, #667eea 0%, #764ba2 100%);
  width: 0%; transition: width 0.3s;
}
.required-note { color: #dc3545; font-size: 14px; margin-bottom: 20px; }
.thank-you { display: none; text-align: center; padding: 60px 20px; }
.thank-you h2 { color: #28a745; font-size: 32px; margin-bottom: 20px; }
.thank-you p { font-size: 18px; color: #666; }
@media (max-width: 600px) {
  .container { padding: 20px; }
  h1 { font-size: 20px; }
  .question-text { font-size: 15px; }
}
</style>
</head>
<body>
<div class="container">
  <div id="formContainer">
    <h1>{{.Title}}</h1>
    <p class="subtitle">Basierend auf PISA 2022 Skala: {{.ScaleCode}}</p>
    <div class="intro-box">
      <p><strong>Anleitung:</strong></p>
      <p>Beantworte bitte alle Fragen ehrlich. Es gibt keine richtigen oder falschen Antworten.</p>
      <p><strong>Geschätzte Zeit:</strong> ca. {{.EstimatedMinutes}} Minuten</p>
    </div>
{{if .Fragestamm}}    <div class="fragestamm">
      <strong>Einleitungstext für alle folgenden Fragen:</strong><br>
      {{.Fragestamm}}
    </div>
{{end}}    <div class="progress-bar"><div class="progress-fill"></div></div>
    <p class="required-note">* Alle Felder sind Pflichtfelder</p>
    <form id="surveyForm" onsubmit="submitSurvey(event)">
      <div class="form-group">
        <label for="student_name" class="question-text">Dein Name:</label>
        <input type="text" id="student_name" name="student_name" class="student-name"
               placeholder="Vorname Nachname" required>
      </div>
{{range .Items}}      <div class="form-group">
        <span class="question-number">Frage {{.Index}} von {{.Total}}</span>
        <div class="question-text">{{.Text}}</div>
        <div class="radio-group">
{{$item := .}}{{range .Options}}          <div class="radio-option">
            <input type="radio" id="{{$item.ID}}_{{.Value}}" name="{{$item.ID}}" value="{{.Value}}" required>
            <label for="{{$item.ID}}_{{.Value}}">{{.Value}}. {{.Label}}</label>
          </div>
{{end}}        </div>
      </div>
{{end}}      <button type="submit" class="submit-btn" id="submitBtn" disabled>Befragung abschicken</button>
    </form>
  </div>
  <div id="thankYou" class="thank-you">
    <h2>Vielen Dank!</h2>
    <p>Deine Antworten wurden erfolgreich gespeichert.</p>
    <p style="margin-top: 20px;">Du kannst dieses Fenster jetzt schließen.</p>
  </div>
</div>
<script>
const totalQuestions = {{len .Items}};
const collectorUrl = {{.CollectorURL}};
const scaleName = {{.ScaleCode}};

function updateProgress() {
  const form = document.getElementById('surveyForm');
  const answered = form.querySelectorAll('input[type="radio"]:checked').length;
  document.querySelector('.progress-fill').style.width = (answered / totalQuestions) * 100 + '%';
  const submitBtn = document.getElementById('submitBtn');
  submitBtn.disabled = !(answered === totalQuestions && form.student_name.value.trim() !== '');
}

document.addEventListener('DOMContentLoaded', function() {
  document.querySelectorAll('input[type="radio"]').forEach(r => r.addEventListener('change', updateProgress));
  document.getElementById('student_name').addEventListener('input', updateProgress);
});

async function submitSurvey(event) {
  event.preventDefault();
  const form = document.getElementById('surveyForm');
  const submitBtn = document.getElementById('submitBtn');
  submitBtn.disabled = true;
  submitBtn.textContent = 'Wird gesendet...';

  const data = {};
  for (const [key, value] of new FormData(form).entries()) {
    data[key] = value;
  }
  data.timestamp = new Date().toISOString();
  data.scale_name = scaleName;

  try {
    if (collectorUrl !== '') {
      await fetch(collectorUrl, {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify(data)
      });
      showThankYou();
    } else {
      downloadAsJSON(data);
      showThankYou();
    }
  } catch (error) {
    console.error('Error:', error);
    alert('Fehler beim Senden. Daten werden heruntergeladen...');
    downloadAsJSON(data);
    showThankYou();
  }
}

function downloadAsJSON(data) {
  const blob = new Blob([JSON.stringify(data, null, 2)], {type: 'application/json'});
  const url = URL.createObjectURL(blob);
  const a = document.createElement('a');
  a.href = url;
  a.download = 'befragung_' + data.student_name + '_' + Date.now() + '.json';
  a.click();
}

function showThankYou() {
  document.getElementById('formContainer').style.display = 'none';
  document.getElementById('thankYou').style.display = 'block';
}
</script>
</body>
</html>
`))
