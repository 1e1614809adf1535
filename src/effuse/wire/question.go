package wire

// Question is a single entry in the question section of a DNS message.
type Question struct {
	Name  Name
	Type  Type
	Class Class

	// UnicastResponse is the mDNS "unicast response requested" flag, carried
	// in the top bit of the class word (RFC-6762 section 18.12). It is
	// always false in conventional unicast DNS.
	UnicastResponse bool
}

func (e *encoder) writeQuestion(q *Question) error {
	if err := e.writeName(q.Name); err != nil {
		return err
	}

	class := uint16(q.Class) &^ classFlagBit
	if q.UnicastResponse {
		class |= classFlagBit
	}

	e.writeUint16(uint16(q.Type))
	e.writeUint16(class)

	return nil
}

func (d *decoder) readQuestion(q *Question) error {
	name, err := d.readName()
	if err != nil {
		return err
	}

	qtype, err := d.readUint16()
	if err != nil {
		return err
	}

	class, err := d.readUint16()
	if err != nil {
		return err
	}

	*q = Question{
		Name:            name,
		Type:            Type(qtype),
		Class:           Class(class &^ classFlagBit),
		UnicastResponse: class&classFlagBit != 0,
	}

	return nil
}
