package web

import (
	"html/template"
	"io"

	"showfolio/internal/portfolio"
)

// PageData is the payload shared by every server-rendered page.
type PageData struct {
	Title      string
	FullName   string
	Role       string
	SignedIn   bool
	Portfolio  *portfolio.ReadModel
	Gallery    []portfolio.GalleryItem
	Search     string
	EditorMode string
}

var pages = map[string]*template.Template{
	"home":      template.Must(template.New("home").Parse(layoutHead + homeBody + layoutFoot)),
	"login":     template.Must(template.New("login").Parse(layoutHead + loginBody + layoutFoot)),
	"register":  template.Must(template.New("register").Parse(layoutHead + registerBody + layoutFoot)),
	"dashboard": template.Must(template.New("dashboard").Parse(layoutHead + dashboardBody + layoutFoot)),
	"editor":    template.Must(template.New("editor").Parse(layoutHead + editorBody + layoutFoot)),
	"gallery":   template.Must(template.New("gallery").Parse(layoutHead + galleryBody + layoutFoot)),
	"notfound":  template.Must(template.New("notfound").Parse(layoutHead + notFoundBody + layoutFoot)),
}

// Render writes the named page. Unknown names render the not-found page.
func Render(w io.Writer, name string, data PageData) error {
	tmpl, ok := pages[name]
	if !ok {
		tmpl = pages["notfound"]
	}
	return tmpl.Execute(w, data)
}

const layoutHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | Showfolio</title>
<style>
  body { margin: 0; font-family: -apple-system, "Segoe UI", Roboto, sans-serif; color: #1f2933; background: #f8fafc; }
  nav { display: flex; align-items: center; gap: 1.5rem; padding: 1rem 2rem; background: #fff; border-bottom: 1px solid #e2e8f0; }
  nav a { color: #334155; text-decoration: none; font-weight: 500; }
  nav .brand { font-weight: 700; color: #4f46e5; margin-right: auto; }
  main { max-width: 960px; margin: 2rem auto; padding: 0 1.5rem; }
  .card { background: #fff; border: 1px solid #e2e8f0; border-radius: 10px; padding: 1.5rem; margin-bottom: 1.25rem; }
  .btn { display: inline-block; background: #4f46e5; color: #fff; border: none; border-radius: 8px; padding: .6rem 1.2rem; font-size: 1rem; cursor: pointer; text-decoration: none; }
  .btn.secondary { background: #e2e8f0; color: #334155; }
  label { display: block; margin: .75rem 0 .25rem; font-weight: 500; }
  input, textarea, select { width: 100%; box-sizing: border-box; padding: .55rem .7rem; border: 1px solid #cbd5e1; border-radius: 6px; font-size: 1rem; }
  .error { color: #dc2626; margin-top: .75rem; min-height: 1.2rem; }
  .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 1.25rem; }
</style>
</head>
<body>
<nav>
  <a class="brand" href="/">Showfolio</a>
  <a href="/gallery">Gallery</a>
  {{if .SignedIn}}<a href="/dashboard">Dashboard</a><a href="#" onclick="signOut(event)">Sign out</a>{{else}}<a href="/login">Sign in</a><a href="/register">Sign up</a>{{end}}
</nav>
<main>
`

const layoutFoot = `
</main>
<script>
async function signOut(ev) {
  ev.preventDefault();
  await fetch('/v1/auth/logout', { method: 'POST' });
  window.location.href = '/';
}
async function postJSON(url, body) {
  const resp = await fetch(url, {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify(body),
  });
  const data = await resp.json().catch(() => ({}));
  if (!resp.ok) { throw new Error(data.error || ('request failed: ' + resp.status)); }
  return data;
}
</script>
</body>
</html>`

const homeBody = `
<div class="card" style="text-align:center; padding:3rem;">
  <h1>Build a portfolio recruiters actually read</h1>
  <p>Students publish a themed portfolio page in minutes. Recruiters browse them all in one gallery.</p>
  <p>
    <a class="btn" href="/register">Get started</a>
    <a class="btn secondary" href="/gallery">Browse portfolios</a>
  </p>
</div>`

const loginBody = `
<div class="card" style="max-width:420px; margin:0 auto;">
  <h2>Sign in</h2>
  <form id="login-form">
    <label for="email">Email</label>
    <input id="email" type="email" required>
    <label for="password">Password</label>
    <input id="password" type="password" required>
    <p class="error" id="form-error"></p>
    <button class="btn" type="submit">Sign in</button>
  </form>
  <p>No account yet? <a href="/register">Sign up</a></p>
</div>
<script>
document.getElementById('login-form').addEventListener('submit', async (ev) => {
  ev.preventDefault();
  try {
    await postJSON('/v1/auth/login', {
      email: document.getElementById('email').value,
      password: document.getElementById('password').value,
    });
    window.location.href = '/dashboard';
  } catch (err) {
    document.getElementById('form-error').textContent = err.message;
  }
});
</script>`

const registerBody = `
<div class="card" style="max-width:420px; margin:0 auto;">
  <h2>Create your account</h2>
  <form id="register-form">
    <label for="full_name">Full name</label>
    <input id="full_name" required>
    <label for="email">Email</label>
    <input id="email" type="email" required>
    <label for="password">Password (8+ characters)</label>
    <input id="password" type="password" minlength="8" required>
    <label for="role">I am a</label>
    <select id="role">
      <option value="student">Student</option>
      <option value="recruiter">Recruiter</option>
    </select>
    <p class="error" id="form-error"></p>
    <button class="btn" type="submit">Sign up</button>
  </form>
  <p>Already registered? <a href="/login">Sign in</a></p>
</div>
<script>
document.getElementById('register-form').addEventListener('submit', async (ev) => {
  ev.preventDefault();
  try {
    await postJSON('/v1/auth/register', {
      full_name: document.getElementById('full_name').value,
      email: document.getElementById('email').value,
      password: document.getElementById('password').value,
      role: document.getElementById('role').value,
    });
    window.location.href = '/dashboard';
  } catch (err) {
    document.getElementById('form-error').textContent = err.message;
  }
});
</script>`

const dashboardBody = `
<h1>Welcome, {{.FullName}}</h1>
{{if eq .Role "student"}}
  {{if .Portfolio}}
  <div class="card">
    <h2>Your portfolio</h2>
    <p><strong>{{.Portfolio.Portfolio.Username}}</strong> &mdash; {{.Portfolio.Portfolio.Tagline}}</p>
    <p>Theme: {{.Portfolio.Portfolio.Theme}}{{if .Portfolio.Portfolio.IsPublic}} &middot; public{{else}} &middot; private{{end}}</p>
    <p>
      <a class="btn" href="/portfolio/edit">Edit portfolio</a>
      <a class="btn secondary" href="/portfolio/{{.Portfolio.Portfolio.Username}}">View public page</a>
    </p>
  </div>
  {{else}}
  <div class="card">
    <h2>No portfolio yet</h2>
    <p>Create your portfolio to appear in the gallery.</p>
    <a class="btn" href="/portfolio/create">Create portfolio</a>
  </div>
  {{end}}
{{else}}
<div class="card">
  <h2>Find your next hire</h2>
  <p>Browse student portfolios in the gallery.</p>
  <a class="btn" href="/gallery">Open gallery</a>
</div>
{{end}}`

const editorBody = `
<h1>{{if eq .EditorMode "create"}}Create your portfolio{{else}}Edit your portfolio{{end}}</h1>
<form id="editor-form">
  <div class="card">
    <h2>Basics</h2>
    <label for="username">Username (letters and digits, shown in your URL)</label>
    <input id="username" {{if eq .EditorMode "edit"}}disabled{{end}} required>
    <label for="tagline">Tagline</label>
    <input id="tagline">
    <label for="bio">Bio</label>
    <textarea id="bio" rows="4"></textarea>
    <label for="location">Location</label>
    <input id="location">
    <label for="theme">Theme</label>
    <select id="theme">
      <option value="modern">Modern</option>
      <option value="minimal">Minimal</option>
      <option value="professional">Professional</option>
    </select>
    <label><input id="is_public" type="checkbox" style="width:auto" checked> Publicly visible</label>
  </div>
  <div class="card">
    <h2>Links</h2>
    <label for="website">Website</label>
    <input id="website">
    <label for="github">GitHub</label>
    <input id="github">
    <label for="linkedin">LinkedIn</label>
    <input id="linkedin">
    <label for="phone">Phone</label>
    <input id="phone">
  </div>
  <div class="card">
    <h2>Sections</h2>
    <p>Education, experience, projects and skills are edited as JSON lists for now.</p>
    <label for="education">Education</label>
    <textarea id="education" rows="4">[]</textarea>
    <label for="experience">Experience</label>
    <textarea id="experience" rows="4">[]</textarea>
    <label for="projects">Projects</label>
    <textarea id="projects" rows="4">[]</textarea>
    <label for="skills">Skills</label>
    <textarea id="skills" rows="4">[]</textarea>
  </div>
  <p class="error" id="form-error"></p>
  <button class="btn" type="submit">{{if eq .EditorMode "create"}}Create{{else}}Save changes{{end}}</button>
</form>
<script>
const mode = {{.EditorMode}};
async function loadExisting() {
  if (mode !== 'edit') { return; }
  const resp = await fetch('/v1/portfolio');
  if (!resp.ok) { return; }
  const data = await resp.json();
  const p = data.portfolio || {};
  document.getElementById('username').value = p.username || '';
  document.getElementById('tagline').value = p.tagline || '';
  document.getElementById('bio').value = p.bio || '';
  document.getElementById('location').value = p.location || '';
  document.getElementById('theme').value = p.theme || 'modern';
  document.getElementById('is_public').checked = p.is_public !== false;
  document.getElementById('website').value = p.website || '';
  document.getElementById('github').value = p.github || '';
  document.getElementById('linkedin').value = p.linkedin || '';
  document.getElementById('phone').value = p.phone || '';
  document.getElementById('education').value = JSON.stringify(data.education || [], null, 2);
  document.getElementById('experience').value = JSON.stringify(data.experience || [], null, 2);
  document.getElementById('projects').value = JSON.stringify(data.projects || [], null, 2);
  document.getElementById('skills').value = JSON.stringify(data.skills || [], null, 2);
}
loadExisting();
document.getElementById('editor-form').addEventListener('submit', async (ev) => {
  ev.preventDefault();
  const errEl = document.getElementById('form-error');
  let body;
  try {
    body = {
      username: document.getElementById('username').value,
      tagline: document.getElementById('tagline').value,
      bio: document.getElementById('bio').value,
      location: document.getElementById('location').value,
      theme: document.getElementById('theme').value,
      is_public: document.getElementById('is_public').checked,
      website: document.getElementById('website').value,
      github: document.getElementById('github').value,
      linkedin: document.getElementById('linkedin').value,
      phone: document.getElementById('phone').value,
      education: JSON.parse(document.getElementById('education').value),
      experience: JSON.parse(document.getElementById('experience').value),
      projects: JSON.parse(document.getElementById('projects').value),
      skills: JSON.parse(document.getElementById('skills').value),
    };
  } catch (err) {
    errEl.textContent = 'section lists must be valid JSON: ' + err.message;
    return;
  }
  try {
    const resp = await fetch('/v1/portfolio', {
      method: mode === 'create' ? 'POST' : 'PUT',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(body),
    });
    const data = await resp.json().catch(() => ({}));
    if (!resp.ok) { throw new Error(data.error || ('save failed: ' + resp.status)); }
    window.location.href = '/dashboard';
  } catch (err) {
    errEl.textContent = err.message;
  }
});
</script>`

const galleryBody = `
<h1>Portfolio gallery</h1>
<form method="GET" action="/gallery" style="margin-bottom:1.5rem; display:flex; gap:.75rem;">
  <input name="search" placeholder="Search by name, tagline, bio or location" value="{{.Search}}">
  <button class="btn" type="submit">Search</button>
</form>
{{if .Gallery}}
<div class="grid">
  {{range .Gallery}}
  <div class="card">
    <h3>{{.FullName}}</h3>
    {{if .Tagline}}<p>{{.Tagline}}</p>{{end}}
    {{if .Location}}<p>{{.Location}}</p>{{end}}
    <a class="btn secondary" href="/portfolio/{{.Username}}">View portfolio</a>
  </div>
  {{end}}
</div>
{{else}}
<div class="card"><p>No portfolios match{{if .Search}} &ldquo;{{.Search}}&rdquo;{{end}}.</p></div>
{{end}}`

const notFoundBody = `
<div class="card" style="text-align:center; padding:3rem;">
  <h1>404</h1>
  <p>This page does not exist, or the portfolio is not public.</p>
  <a class="btn secondary" href="/">Back home</a>
</div>`
