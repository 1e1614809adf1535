package wire

// Message is a complete DNS message: a header followed by the question,
// answer, authority and additional sections.
type Message struct {
	Header Header

	Questions   []Question
	Answers     []Record
	Authorities []Record
	Additionals []Record
}

// Pack encodes the message into wire format.
//
// The header's section counts are set from the section lengths before
// encoding. When compress is true, names in the question and record-name
// positions are compressed with pointers to earlier occurrences; mDNS
// responses should be compressed (RFC-6762 section 18.14), unicast client
// questions need not be.
func (m *Message) Pack(compress bool) ([]byte, error) {
	m.Header.QuestionCount = uint16(len(m.Questions))
	m.Header.AnswerCount = uint16(len(m.Answers))
	m.Header.AuthorityCount = uint16(len(m.Authorities))
	m.Header.AdditionalCount = uint16(len(m.Additionals))

	e := newEncoder(compress)
	e.writeHeader(&m.Header)

	for i := range m.Questions {
		if err := e.writeQuestion(&m.Questions[i]); err != nil {
			return nil, err
		}
	}

	for _, section := range [][]Record{m.Answers, m.Authorities, m.Additionals} {
		for i := range section {
			if err := e.writeRecord(&section[i]); err != nil {
				return nil, err
			}
		}
	}

	return e.buf, nil
}

// Unpack decodes a message from wire format.
//
// The decoded message owns all of its data; nothing retains a reference
// into data once Unpack returns.
func (m *Message) Unpack(data []byte) error {
	d := newDecoder(data)

	if err := d.readHeader(&m.Header); err != nil {
		return err
	}

	m.Questions = nil
	m.Answers = nil
	m.Authorities = nil
	m.Additionals = nil

	for i := uint16(0); i < m.Header.QuestionCount; i++ {
		var q Question
		if err := d.readQuestion(&q); err != nil {
			return err
		}
		m.Questions = append(m.Questions, q)
	}

	var err error

	if m.Answers, err = d.readSection(m.Header.AnswerCount); err != nil {
		return err
	}
	if m.Authorities, err = d.readSection(m.Header.AuthorityCount); err != nil {
		return err
	}
	if m.Additionals, err = d.readSection(m.Header.AdditionalCount); err != nil {
		return err
	}

	return nil
}

// readSection decodes count consecutive records.
func (d *decoder) readSection(count uint16) ([]Record, error) {
	var section []Record

	for i := uint16(0); i < count; i++ {
		var r Record
		if err := d.readRecord(&r); err != nil {
			return nil, err
		}
		section = append(section, r)
	}

	return section, nil
}
