package chat

// ViewState holds presentation flags the front end reads back.
type ViewState struct {
	MenuOpen    bool
	InfoVisible bool
}

func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Controller) ToggleMenu() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.MenuOpen = !c.view.MenuOpen
	return c.view
}

func (c *Controller) CloseMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.MenuOpen = false
}

// ShowInfo opens the info panel, closing the menu, and returns its text.
func (c *Controller) ShowInfo() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.InfoVisible = true
	c.view.MenuOpen = false
	return InfoText
}

func (c *Controller) HideInfo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.InfoVisible = false
}
