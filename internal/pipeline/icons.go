// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pipeline

// Base64-encoded SVG icons shown next to each provider in the Veza UI.

const workboardIconB64 = "PHN2ZyB3aWR0aD0iMjUwMCIgaGVpZ2h0PSIyNTAwIiB2aWV3Qm94PSIwIDAgMjU2IDI1NiIgeG1sbnM9" +
	"Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIiBwcmVzZXJ2ZUFzcGVjdFJhdGlvPSJ4TWlkWU1pZCI+" +
	"PHBhdGggZD0iTTI1NiAxMjhjMCA3MC42OTItNTcuMzA4IDEyOC0xMjggMTI4QzU3LjMwOCAyNTYgMCAx" +
	"OTguNjkyIDAgMTI4IDAgNTcuMzA4IDU3LjMwOCAwIDEyOCAwYzcwLjY5MiAwIDEyOCA1Ny4zMDggMTI4" +
	"IDEyOCIgZmlsbD0iIzUxQkJENiIvPjxwYXRoIGQ9Ik0xMDEuOTggMTEwLjA3NlY3NS40MTRsNTUuODE2" +
	"IDE4LjczMy01NS44MTYgMTUuOTI5em01NS44MTYgNTQuNzE1TDEwMS45OCAxODEuN3YtMzQuODc4bDU1" +
	"LjgxNiAxNy45Njh6bTM2LjkzMi04My4wOTVsLTkyLjc0OC0zMy4wM1YzMi41OTZoLTI1LjZ2MTkwLjk1" +
	"aDI1LjZ2LTE0Ljg2bDkyLjc0OC0yOC4zNjZ2LTI1LjZsLTY4LjQwNy0yNS42IDY4LjQwNy0yMS40MDN2" +
	"LTI2LjAyeiIgZmlsbD0iI0ZGRiIvPjwvc3ZnPg=="

const sailpointIconB64 = "PHN2ZyB2ZXJzaW9uPSIxLjEiIGlkPSJMYXllcl8xIiB4bWxuczp4PSJuc19leHRlbmQ7IiB4bWxuczpp" +
	"PSJuc19haTsiIHhtbG5zOmdyYXBoPSJuc19ncmFwaHM7IiB4bWxucz0iaHR0cDovL3d3dy53My5vcmcv" +
	"MjAwMC9zdmciIHhtbG5zOnhsaW5rPSJodHRwOi8vd3d3LnczLm9yZy8xOTk5L3hsaW5rIiB4PSIwcHgi" +
	"IHk9IjBweCIgdmlld0JveD0iMCAwIDEwOS41IDEwNyIgc3R5bGU9ImVuYWJsZS1iYWNrZ3JvdW5kOm5l" +
	"dyAwIDAgMTA5LjUgMTA3OyIgeG1sOnNwYWNlPSJwcmVzZXJ2ZSI+CiA8c3R5bGUgdHlwZT0idGV4dC9j" +
	"c3MiPgogIC5zdDB7ZmlsbDojMDAzM0ExO30KCS5zdDF7ZmlsbDojQ0MyN0IwO30KCS5zdDJ7ZmlsbDoj" +
	"MDA3MUNFO30KCS5zdDN7ZmlsbDojRTE3RkQyO30KIDwvc3R5bGU+CiA8bWV0YWRhdGE+CiAgPHNmdyB4" +
	"bWxucz0ibnNfc2Z3OyI+CiAgIDxzbGljZXM+CiAgIDwvc2xpY2VzPgogICA8c2xpY2VTb3VyY2VCb3Vu" +
	"ZHMgYm90dG9tTGVmdE9yaWdpbj0idHJ1ZSIgaGVpZ2h0PSIxMDciIHdpZHRoPSIxMDkuNSIgeD0iLTE2" +
	"Ny41IiB5PSItMjEuNSI+CiAgIDwvc2xpY2VTb3VyY2VCb3VuZHM+CiAgPC9zZnc+CiA8L21ldGFkYXRh" +
	"PgogPGc+CiAgPHBhdGggY2xhc3M9InN0MCIgZD0iTTYzLDBsMTMuMiw3OC42SDBMNjMsMHoiPgogIDwv" +
	"cGF0aD4KICA8cGF0aCBjbGFzcz0ic3QxIiBkPSJNNjIuOSwwbDQ2LjcsNzguNkg3Nkw2Mi45LDB6Ij4K" +
	"ICA8L3BhdGg+CiAgPHBhdGggY2xhc3M9InN0MiIgZD0iTTAsNzguNmg3Ni4ybDQuOCwyOC40TDAsNzgu" +
	"NnoiPgogIDwvcGF0aD4KICA8cGF0aCBjbGFzcz0ic3QzIiBkPSJNNzYsNzguNmgzMy41TDgwLjgsMTA3" +
	"TDc2LDc4LjZ6Ij4KICA8L3BhdGg+CiA8L2c+Cjwvc3ZnPg=="
