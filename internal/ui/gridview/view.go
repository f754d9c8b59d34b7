package gridview

// View renders the toolbar and the grid.
func (m *Model) View() string {
	return m.renderToolbar() + "\n" + renderBody(m.session.Engine().Index(), m.layout, m.session.State(), m.styles)
}
