package console

// View is the screen the console is showing. It is one of ListView or
// DetailView and changes only through Select and Back.
type View interface {
	isView()
}

type ListView struct{}

// DetailView shows a single account.
type DetailView struct {
	AccountNumber int64
}

func (ListView) isView()   {}
func (DetailView) isView() {}

// Select opens the detail screen for an account. It is valid from any view.
func Select(_ View, accountNumber int64) View {
	return DetailView{AccountNumber: accountNumber}
}

// Back returns to the list. The list is its own back target.
func Back(_ View) View {
	return ListView{}
}
