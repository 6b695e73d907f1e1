package theme

// The three layout variants below share the same data shape
// (portfolio.ReadModel) and differ only in presentation.

const modernTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Owner.FullName}}</title>
<style>
  body { margin: 0; font-family: 'Segoe UI', Arial, sans-serif; color: #1f2937; background: #f9fafb; }
  .hero { background: linear-gradient(135deg, #2563eb, #7c3aed); color: #fff; padding: 72px 24px; text-align: center; }
  .hero h1 { font-size: 44px; margin: 0 0 8px; }
  .hero p.tagline { font-size: 20px; margin: 0 0 16px; opacity: 0.9; }
  .contact a, .contact span { color: #e0e7ff; margin: 0 10px; text-decoration: none; font-size: 14px; }
  .wrap { max-width: 960px; margin: 0 auto; padding: 40px 24px; }
  h2 { font-size: 26px; margin: 40px 0 16px; color: #111827; }
  .card { background: #fff; border-radius: 12px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); padding: 20px; margin-bottom: 16px; }
  .card h3 { margin: 0 0 4px; font-size: 18px; }
  .muted { color: #6b7280; font-size: 14px; }
  .tag { display: inline-block; background: #dbeafe; color: #1d4ed8; border-radius: 999px; padding: 2px 10px; font-size: 12px; margin: 2px; }
  .skills { display: flex; flex-wrap: wrap; gap: 16px; }
  .skills .card { flex: 1 1 260px; }
</style>
</head>
<body>
<div class="hero">
  <h1>{{.Owner.FullName}}</h1>
  {{if .Portfolio.Tagline}}<p class="tagline">{{.Portfolio.Tagline}}</p>{{end}}
  <div class="contact">
    {{if .Owner.Email}}<a href="mailto:{{.Owner.Email}}">{{.Owner.Email}}</a>{{end}}
    {{if .Portfolio.Phone}}<span>{{.Portfolio.Phone}}</span>{{end}}
    {{if .Portfolio.Location}}<span>{{.Portfolio.Location}}</span>{{end}}
    {{if .Portfolio.Website}}<a href="{{.Portfolio.Website}}">Website</a>{{end}}
    {{if .Portfolio.Github}}<a href="{{.Portfolio.Github}}">GitHub</a>{{end}}
    {{if .Portfolio.Linkedin}}<a href="{{.Portfolio.Linkedin}}">LinkedIn</a>{{end}}
  </div>
</div>
<div class="wrap">
  {{if .Portfolio.Bio}}<h2>About</h2><div class="card"><p>{{.Portfolio.Bio}}</p></div>{{end}}
  {{if .Experience}}
  <h2>Experience</h2>
  {{range .Experience}}
  <div class="card">
    <h3>{{.Position}}</h3>
    <p class="muted">{{.Company}}{{if .Location}} · {{.Location}}{{end}}{{if .StartDate}} · {{.StartDate}}{{if .EndDate}} – {{.EndDate}}{{else}} – Present{{end}}{{end}}</p>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
  </div>
  {{end}}
  {{end}}
  {{if .Education}}
  <h2>Education</h2>
  {{range .Education}}
  <div class="card">
    <h3>{{.Degree}} in {{.Field}}</h3>
    <p class="muted">{{.Institution}}{{if .StartDate}} · {{.StartDate}}{{if .EndDate}} – {{.EndDate}}{{end}}{{end}}</p>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
  </div>
  {{end}}
  {{end}}
  {{if .Projects}}
  <h2>Projects</h2>
  {{range .Projects}}
  <div class="card">
    <h3>{{.Title}}</h3>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
    {{range .Technologies}}<span class="tag">{{.}}</span>{{end}}
    <p class="muted">
      {{if .Link}}<a href="{{.Link}}">Live</a>{{end}}
      {{if .GithubLink}}<a href="{{.GithubLink}}">Source</a>{{end}}
    </p>
  </div>
  {{end}}
  {{end}}
  {{if .Skills}}
  <h2>Skills</h2>
  <div class="skills">
    {{range .SkillsByCategory}}
    <div class="card">
      <h3>{{.Category}}</h3>
      {{range .Skills}}<span class="tag">{{.Name}}{{if .Proficiency}} · {{.Proficiency}}{{end}}</span>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}
</div>
</body>
</html>
`

const minimalTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Owner.FullName}}</title>
<style>
  body { margin: 0; font-family: Georgia, 'Times New Roman', serif; color: #111; background: #fff; }
  .wrap { max-width: 760px; margin: 0 auto; padding: 64px 24px; }
  header { border-bottom: 2px solid #111; padding-bottom: 24px; margin-bottom: 40px; }
  header h1 { font-size: 48px; margin: 0 0 4px; }
  header p.tagline { font-size: 18px; color: #555; margin: 0 0 12px; }
  .contact { font-size: 14px; color: #333; }
  .contact a { color: #333; margin-right: 14px; }
  h2 { font-size: 14px; letter-spacing: 2px; text-transform: uppercase; margin: 36px 0 12px; }
  .entry { margin-bottom: 20px; }
  .entry h3 { font-size: 17px; margin: 0; }
  .muted { color: #666; font-size: 14px; margin: 2px 0; }
  ul.plain { list-style: none; padding: 0; margin: 0; }
  ul.plain li { display: inline; margin-right: 12px; font-size: 15px; }
</style>
</head>
<body>
<div class="wrap">
  <header>
    <h1>{{.Owner.FullName}}</h1>
    {{if .Portfolio.Tagline}}<p class="tagline">{{.Portfolio.Tagline}}</p>{{end}}
    <div class="contact">
      {{if .Owner.Email}}<a href="mailto:{{.Owner.Email}}">{{.Owner.Email}}</a>{{end}}
      {{if .Portfolio.Phone}}<span>{{.Portfolio.Phone}}</span>{{end}}
      {{if .Portfolio.Location}}<span> · {{.Portfolio.Location}}</span>{{end}}
      {{if .Portfolio.Website}}<a href="{{.Portfolio.Website}}"> · web</a>{{end}}
      {{if .Portfolio.Github}}<a href="{{.Portfolio.Github}}"> · github</a>{{end}}
      {{if .Portfolio.Linkedin}}<a href="{{.Portfolio.Linkedin}}"> · linkedin</a>{{end}}
    </div>
  </header>
  {{if .Portfolio.Bio}}<p>{{.Portfolio.Bio}}</p>{{end}}
  {{if .Experience}}
  <h2>Experience</h2>
  {{range .Experience}}
  <div class="entry">
    <h3>{{.Position}}, {{.Company}}</h3>
    <p class="muted">{{if .Location}}{{.Location}} · {{end}}{{.StartDate}}{{if .EndDate}} – {{.EndDate}}{{else}} – present{{end}}</p>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
  </div>
  {{end}}
  {{end}}
  {{if .Education}}
  <h2>Education</h2>
  {{range .Education}}
  <div class="entry">
    <h3>{{.Institution}}</h3>
    <p class="muted">{{.Degree}}, {{.Field}}{{if .StartDate}} · {{.StartDate}}{{if .EndDate}} – {{.EndDate}}{{end}}{{end}}</p>
  </div>
  {{end}}
  {{end}}
  {{if .Projects}}
  <h2>Projects</h2>
  {{range .Projects}}
  <div class="entry">
    <h3>{{.Title}}</h3>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
    <p class="muted">
      {{range .Technologies}}{{.}} {{end}}
      {{if .Link}}<a href="{{.Link}}">live</a>{{end}}
      {{if .GithubLink}}<a href="{{.GithubLink}}">source</a>{{end}}
    </p>
  </div>
  {{end}}
  {{end}}
  {{if .Skills}}
  <h2>Skills</h2>
  {{range .SkillsByCategory}}
  <div class="entry">
    <h3>{{.Category}}</h3>
    <ul class="plain">{{range .Skills}}<li>{{.Name}}</li>{{end}}</ul>
  </div>
  {{end}}
  {{end}}
</div>
</body>
</html>
`

const professionalTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Owner.FullName}}</title>
<style>
  body { margin: 0; font-family: 'Helvetica Neue', Arial, sans-serif; color: #1e293b; background: #f1f5f9; }
  .page { display: flex; max-width: 1080px; margin: 0 auto; min-height: 100vh; background: #fff; }
  .side { width: 300px; background: #0f172a; color: #e2e8f0; padding: 48px 28px; }
  .side h1 { font-size: 28px; margin: 0 0 6px; color: #fff; }
  .side .tagline { color: #94a3b8; font-size: 15px; margin: 0 0 24px; }
  .side h2 { font-size: 13px; text-transform: uppercase; letter-spacing: 1px; color: #38bdf8; margin: 28px 0 10px; }
  .side a { color: #e2e8f0; text-decoration: none; display: block; font-size: 14px; margin: 4px 0; }
  .side .skill { font-size: 14px; margin: 3px 0; }
  .main { flex: 1; padding: 48px 40px; }
  .main h2 { font-size: 20px; color: #0f172a; border-bottom: 2px solid #38bdf8; padding-bottom: 6px; margin: 32px 0 16px; }
  .entry { margin-bottom: 18px; }
  .entry h3 { margin: 0; font-size: 16px; }
  .muted { color: #64748b; font-size: 13px; margin: 2px 0; }
</style>
</head>
<body>
<div class="page">
  <aside class="side">
    <h1>{{.Owner.FullName}}</h1>
    {{if .Portfolio.Tagline}}<p class="tagline">{{.Portfolio.Tagline}}</p>{{end}}
    <h2>Contact</h2>
    {{if .Owner.Email}}<a href="mailto:{{.Owner.Email}}">{{.Owner.Email}}</a>{{end}}
    {{if .Portfolio.Phone}}<a href="tel:{{.Portfolio.Phone}}">{{.Portfolio.Phone}}</a>{{end}}
    {{if .Portfolio.Location}}<span class="skill">{{.Portfolio.Location}}</span>{{end}}
    {{if .Portfolio.Website}}<a href="{{.Portfolio.Website}}">Website</a>{{end}}
    {{if .Portfolio.Github}}<a href="{{.Portfolio.Github}}">GitHub</a>{{end}}
    {{if .Portfolio.Linkedin}}<a href="{{.Portfolio.Linkedin}}">LinkedIn</a>{{end}}
    {{if .Skills}}
    {{range .SkillsByCategory}}
    <h2>{{.Category}}</h2>
    {{range .Skills}}<div class="skill">{{.Name}}{{if .Proficiency}} &middot; {{.Proficiency}}{{end}}</div>{{end}}
    {{end}}
    {{end}}
  </aside>
  <main class="main">
    {{if .Portfolio.Bio}}<h2>Profile</h2><p>{{.Portfolio.Bio}}</p>{{end}}
    {{if .Experience}}
    <h2>Experience</h2>
    {{range .Experience}}
    <div class="entry">
      <h3>{{.Position}} &mdash; {{.Company}}</h3>
      <p class="muted">{{if .Location}}{{.Location}} · {{end}}{{.StartDate}}{{if .EndDate}} – {{.EndDate}}{{else}} – Present{{end}}</p>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </div>
    {{end}}
    {{end}}
    {{if .Education}}
    <h2>Education</h2>
    {{range .Education}}
    <div class="entry">
      <h3>{{.Degree}} in {{.Field}}</h3>
      <p class="muted">{{.Institution}}{{if .StartDate}} · {{.StartDate}}{{if .EndDate}} – {{.EndDate}}{{end}}{{end}}</p>
    </div>
    {{end}}
    {{end}}
    {{if .Projects}}
    <h2>Projects</h2>
    {{range .Projects}}
    <div class="entry">
      <h3>{{.Title}}</h3>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
      <p class="muted">{{range .Technologies}}{{.}} {{end}}{{if .Link}}<a href="{{.Link}}">Live</a> {{end}}{{if .GithubLink}}<a href="{{.GithubLink}}">Source</a>{{end}}</p>
    </div>
    {{end}}
    {{end}}
  </main>
</div>
</body>
</html>
`
